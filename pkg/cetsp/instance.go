package cetsp

import "fmt"

// Instance is a finite ordered sequence of disks together with optional
// fixed start/end points. Disk indices are stable for the lifetime of the
// Instance. If Start or End is set the optimal solution is a path between
// them; otherwise it is a closed tour.
type Instance struct {
	Disks []Disk
	Start *Point
	End   *Point
}

// NewTourInstance builds a closed-tour instance over disks.
func NewTourInstance(disks []Disk) (*Instance, error) {
	inst := &Instance{Disks: append([]Disk(nil), disks...)}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// NewPathInstance builds a fixed-endpoint path instance over disks.
func NewPathInstance(disks []Disk, start, end Point) (*Instance, error) {
	inst := &Instance{Disks: append([]Disk(nil), disks...), Start: &start, End: &end}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// IsPath reports whether this instance is a fixed-endpoint path rather than
// a closed tour.
func (inst *Instance) IsPath() bool {
	return inst.Start != nil || inst.End != nil
}

// Validate checks the Instance invariants: a closed tour needs at least one
// disk, and a path needs both endpoints set together.
func (inst *Instance) Validate() error {
	if inst.Start == nil && inst.End == nil && len(inst.Disks) == 0 {
		return fmt.Errorf("%w: closed tour requested with zero disks", ErrInvalidInstance)
	}
	if (inst.Start == nil) != (inst.End == nil) {
		return fmt.Errorf("%w: start and end must both be set or both be nil", ErrInvalidInstance)
	}
	for _, d := range inst.Disks {
		if d.R < 0 {
			return fmt.Errorf("%w: disk radius must be non-negative, got %g", ErrInvalidInstance, d.R)
		}
	}
	return nil
}

// NumDisks returns the number of disks in the instance.
func (inst *Instance) NumDisks() int {
	return len(inst.Disks)
}
