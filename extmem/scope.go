package extmem

import (
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slog"
)

// boundResource is one side of a case: a resource and the memory bound to it. Each piece has its
// own liveness flag, so releasing one side never depends on the state of the other.
type boundResource struct {
	side     string
	resource Resource
	memory   Memory

	resourceLive bool
	memoryLive   bool
	mapped       bool
}

func (b *boundResource) unmap(device Device) {
	if b.mapped {
		device.UnmapMemory(b.memory)
		b.mapped = false
	}
}

func (b *boundResource) release(device Device) {
	b.unmap(device)

	if b.resourceLive {
		device.DestroyResource(b.resource)
		b.resourceLive = false
	}

	if b.memoryLive {
		device.FreeMemory(b.memory)
		b.memoryLive = false
	}
}

type cleanup struct {
	name    string
	release func() error
}

// cleanupScope releases everything a case acquired, in reverse acquisition order, after a single
// idle wait. A scope that acquired nothing makes no device calls at all.
type cleanupScope struct {
	logger   *slog.Logger
	device   Device
	cleanups []cleanup
}

func newCleanupScope(logger *slog.Logger, device Device) *cleanupScope {
	return &cleanupScope{logger: logger, device: device}
}

func (s *cleanupScope) push(name string, release func() error) {
	s.cleanups = append(s.cleanups, cleanup{name: name, release: release})
}

func (s *cleanupScope) trackResource(b *boundResource) {
	s.push(b.side+" resource", func() error {
		b.release(s.device)
		return nil
	})
}

func (s *cleanupScope) trackMapping(side string, b *boundResource) {
	s.push(side+" mapping", func() error {
		b.unmap(s.device)
		return nil
	})
}

func (s *cleanupScope) trackHandle(side string, handle *ExternalHandle) {
	s.push(side+" handle", func() error {
		if !handle.Owned() {
			return nil
		}
		err := s.device.ReleaseHandle(handle)
		handle.TransferOwnership()
		return err
	})
}

func (s *cleanupScope) close() error {
	if len(s.cleanups) == 0 {
		return nil
	}

	var result *multierror.Error

	err := s.device.WaitIdle()
	if err != nil {
		result = multierror.Append(result, errors.Wrap(err, "waiting for device idle"))
	}

	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.logger.Debug("Harness::Teardown", slog.String("release", s.cleanups[i].name))
		err = s.cleanups[i].release()
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "releasing %s", s.cleanups[i].name))
		}
	}
	s.cleanups = nil

	return result.ErrorOrNil()
}
