//go:build linux

package proc

import (
	"context"
	"log/slog"

	"github.com/ja7ad/taskman/pkg/model"
)

// Resolver looks up the parts of a process that may need elevated
// privileges. An error means the value is unknown; policy values such as
// model.OwnerRoot for a denied lookup are returned with a nil error.
type Resolver interface {
	Owner(ctx context.Context, pid uint32) (string, error)
	Executable(ctx context.Context, pid uint32) (string, error)
}

// Reader assembles process samples from an FS.
type Reader struct {
	fs       FS
	hz       int64
	resolver Resolver
	log      *slog.Logger
}

type Option func(*Reader)

// WithResolver sets the owner and executable lookup. Without one, owner and
// path stay at their defaults.
func WithResolver(r Resolver) Option { return func(rd *Reader) { rd.resolver = r } }

// WithClockTicks overrides ClockTicks.
func WithClockTicks(hz int64) Option { return func(rd *Reader) { rd.hz = hz } }

func WithLogger(l *slog.Logger) Option { return func(rd *Reader) { rd.log = l } }

func NewReader(fs FS, opts ...Option) *Reader {
	r := &Reader{fs: fs, log: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	if r.hz <= 0 {
		r.hz = ClockTicks()
	}
	return r
}

// FS returns the filesystem the reader samples.
func (r *Reader) FS() FS { return r.fs }

// ClockTicks returns the tick rate used for CPU conversion.
func (r *Reader) ClockTicks() int64 { return r.hz }

// ListPIDs lists the live pids.
func (r *Reader) ListPIDs() ([]uint32, error) { return r.fs.ListPIDs() }

// ReadProcess returns the best-effort sample for pid. It never fails: each
// sub-read that errors leaves its fields at the defaults and its Missing bit
// set, so a pid that exits mid-read still yields a record.
func (r *Reader) ReadProcess(ctx context.Context, pid uint32) model.ProcessSample {
	s := model.NewProcessSample(pid)
	log := r.log.With("pid", pid)

	if st, err := r.fs.ReadStatus(pid); err == nil {
		s.Name = st.Name
		s.Status = st.State
		s.MemoryMB = st.RSS.MB()
		s.ParentPID = st.PPid
		s.Missing &^= model.FieldStatus
	} else {
		log.Debug("read status", "err", err)
	}

	if stat, err := r.fs.ReadStat(pid); err != nil {
		log.Debug("read stat", "err", err)
	} else if up, err := r.fs.ReadUptime(); err != nil {
		log.Debug("read uptime", "err", err)
	} else {
		s.CPUTicks = stat.Ticks()
		s.StartTicks = stat.StartTime
		s.CPUPercent = LifetimeCPUPercent(stat, up, r.hz)
		s.Missing &^= model.FieldCPU
	}

	if r.resolver != nil {
		if owner, err := r.resolver.Owner(ctx, pid); err == nil {
			s.Owner = owner
			s.Missing &^= model.FieldOwner
		} else {
			log.Debug("resolve owner", "err", err)
		}
		if path, err := r.resolver.Executable(ctx, pid); err == nil {
			s.ExecutablePath = path
			s.Missing &^= model.FieldPath
		} else {
			log.Debug("resolve executable", "err", err)
		}
	}

	if kids, bad, err := r.fs.ReadChildren(pid); err == nil {
		s.ChildrenPIDs = kids
		s.Missing &^= model.FieldChildren
		for _, tok := range bad {
			log.Warn("skip child pid", "token", tok)
		}
	} else {
		log.Debug("read children", "err", err)
	}

	return s
}
