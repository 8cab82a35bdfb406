package courier

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrCourierIsNotConstructed is returned when a Courier instance was not created through
	// the NewCourier or RestoreCourier factory methods.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")

	// ErrCourierIsAlreadyBusy indicates an attempt to hand an order to a courier
	// who already holds one.
	ErrCourierIsAlreadyBusy = errors.New("courier is already busy")

	// ErrCourierIsNotBusy indicates an attempt to free a courier who holds no order.
	ErrCourierIsNotBusy = errors.New("courier is not busy")
)

// Courier represents a delivery worker.
//
// A courier holds at most one active order: MarkBusy and MarkFree flip the
// busy flag and refuse to flip it twice in the same direction, so double
// dispatch by the assignment job surfaces as an error instead of silently
// overbooking the courier. Every flip bumps the version counter, which the
// persistence layer uses as an optimistic-concurrency token the same way the
// order aggregate does.
type Courier struct {
	id      kernel.UUID
	name    string
	phone   string
	busy    bool
	version int

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the courier was created via a factory method
	isConstructed bool
}

// NewCourier creates a new free Courier.
// Name and phone must be non-empty; violations are joined into a single error.
func NewCourier(id kernel.UUID, name string, phone string) (*Courier, error) {
	now := time.Now().UTC()

	courier := &Courier{
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
func RestoreCourier(
	id kernel.UUID, name string, phone string, busy bool, version int,
	createdAt, updatedAt time.Time,
) (*Courier, error) {
	courier := &Courier{
		busy:          busy,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
		courier.setVersion(version),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// Validate ensures the Courier instance was properly constructed through a factory method.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}

	return nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact phone number.
func (c *Courier) Phone() string {
	return c.phone
}

// IsBusy reports whether the courier currently holds an order.
func (c *Courier) IsBusy() bool {
	return c.busy
}

// Version returns the optimistic-concurrency counter.
// It starts at 1 and increases by one with every successful mutation.
func (c *Courier) Version() int {
	return c.version
}

// CreatedAt returns the creation timestamp.
func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

// MarkBusy records that the courier took an order.
// Fails with ErrCourierIsAlreadyBusy if the courier already holds one.
func (c *Courier) MarkBusy() error {
	if c.busy {
		return ErrCourierIsAlreadyBusy
	}

	c.busy = true
	c.touch()
	return nil
}

// MarkFree records that the courier finished their delivery.
// Fails with ErrCourierIsNotBusy if the courier holds no order.
func (c *Courier) MarkFree() error {
	if !c.busy {
		return ErrCourierIsNotBusy
	}

	c.busy = false
	c.touch()
	return nil
}

// touch records a successful mutation: the version counter used for
// optimistic concurrency goes up and the update timestamp is refreshed.
func (c *Courier) touch() {
	c.version++
	c.updatedAt = time.Now().UTC()
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Courier) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("courier",
			fmt.Errorf("%d is not a valid version", version))
	}
	c.version = version
	return nil
}
