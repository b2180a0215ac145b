package generations

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// CleanDups deletes every generation equal to the generation retained just
// before it. Pointers at a deleted duplicate are redirected to the retained
// one first. Returns the number of generations deleted.
func (s *Store) CleanDups(verbose bool) (int, error) {
	logger := logging.GetLogger("generations.maintenance")

	numbers, err := s.Numbers()
	if err != nil {
		return 0, err
	}

	var (
		retained    types.Generation
		retainedNum int
		deleted     int
	)
	for _, n := range numbers {
		gen, err := s.Get(n)
		if err != nil {
			return deleted, err
		}

		if retainedNum == 0 || !gen.Equal(retained) {
			retained, retainedNum = gen, n
			continue
		}

		if err := s.redirectPointers(n, retainedNum); err != nil {
			return deleted, err
		}
		event(logger, verbose).Int("generation", n).Int("duplicate_of", retainedNum).Msg("Deleting duplicate generation")
		ok, err := s.Delete(n)
		if err != nil {
			return deleted, err
		}
		if ok {
			deleted++
		}
	}
	return deleted, nil
}

// Align renumbers generations densely from 1, preserving order.
// Returns the number of generations moved.
func (s *Store) Align(verbose bool) (int, error) {
	logger := logging.GetLogger("generations.maintenance")

	numbers, err := s.Numbers()
	if err != nil {
		return 0, err
	}

	moved := 0
	for i, n := range numbers {
		target := i + 1
		if n <= target {
			continue
		}
		event(logger, verbose).Int("from", n).Int("to", target).Msg("Moving generation")
		if err := s.Move(n, target); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

// TidyUp runs CleanDups then Align
func (s *Store) TidyUp() (deleted, aligned int, err error) {
	deleted, err = s.CleanDups(false)
	if err != nil {
		return deleted, 0, err
	}
	aligned, err = s.Align(false)
	return deleted, aligned, err
}

func (s *Store) redirectPointers(from, to int) error {
	isCurrent, err := s.IsCurrent(from)
	if err != nil {
		return err
	}
	if isCurrent {
		if err := s.writePointer(s.paths.CurrentPointer(), to); err != nil {
			return err
		}
	}
	isBuilt, err := s.IsBuilt(from)
	if err != nil {
		return err
	}
	if isBuilt {
		if err := s.writePointer(s.paths.BuiltPointer(), to); err != nil {
			return err
		}
	}
	return nil
}

func event(logger zerolog.Logger, verbose bool) *zerolog.Event {
	if verbose {
		return logger.Info()
	}
	return logger.Debug()
}
