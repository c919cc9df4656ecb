// Package proc reads process and host state from a procfs mount.
//
// All reads go through an afero.Fs rooted at the proc mount, so the same
// code runs against /proc in production and against in-memory fixtures in
// tests.
//
// Readers:
//
//   - FS.ListPIDs        numeric entries of the mount root
//   - FS.ReadStatus      <pid>/status: Name, State, VmRSS, PPid
//   - FS.ReadStat        <pid>/stat: utime, stime, starttime
//   - FS.ReadUptime      uptime: seconds since boot
//   - FS.ReadChildren    <pid>/task/<pid>/children
//   - FS.ReadSystemCPU   stat: aggregate cpu line (idle and total ticks)
//   - FS.ReadMemInfo     meminfo: MemTotal and MemAvailable
//
// Reader.ReadProcess assembles one model.ProcessSample from these plus an
// optional Resolver for owner and executable path. Every sub-read is
// fail-soft: a failure leaves its fields at the defaults of
// model.NewProcessSample and keeps the corresponding model.Field bit set in
// Missing. A pid that exits mid-read still yields a sample.
//
// Process CPU percent is CPU time over the process lifetime:
//
//	100 * ((utime + stime) / hz) / (uptime - starttime/hz)
//
// Host CPU usage is the windowed delta between two aggregate readings:
//
//	100 * (1 - Δidle / Δtotal)
package proc
