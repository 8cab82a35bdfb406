// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// One row per order; line items live in their own table and are loaded as an
// association. Timestamps and the version counter are owned by the aggregate,
// so GORM's automatic time tracking is disabled.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`

	Status        int `gorm:"index"`
	PaymentMethod int

	Paid             bool
	PaidAt           *time.Time
	PaymentReference string

	Street     string
	City       string
	PostalCode string
	Country    string

	ItemsTotal  decimal.Decimal `gorm:"type:numeric"`
	Tax         decimal.Decimal `gorm:"type:numeric"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric"`
	Total       decimal.Decimal `gorm:"type:numeric"`

	CourierID   *uuid.UUID `gorm:"type:uuid;index"`
	Delivered   bool
	DeliveredAt *time.Time

	Version   int
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line item.
// Position preserves the order in which items appeared at checkout.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric"`
	ImageURL  string
}

// TableName specifies the database table name for line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for position, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			Position:  position,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
			ImageURL:  item.ImageURL(),
		})
	}

	pricing := aggregate.Pricing()
	address := aggregate.Address()

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),

		Status:        int(aggregate.Status()),
		PaymentMethod: int(aggregate.PaymentMethod()),

		Paid:             aggregate.IsPaid(),
		PaidAt:           aggregate.PaidAt(),
		PaymentReference: aggregate.PaymentReference(),

		Street:     address.Street(),
		City:       address.City(),
		PostalCode: address.PostalCode(),
		Country:    address.Country(),

		ItemsTotal:  pricing.ItemsTotal().Amount(),
		Tax:         pricing.Tax().Amount(),
		DeliveryFee: pricing.DeliveryFee().Amount(),
		Total:       pricing.Total().Amount(),

		CourierID:   courierID,
		Delivered:   aggregate.IsDelivered(),
		DeliveredAt: aggregate.DeliveredAt(),

		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),

		Items: itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate via RestoreOrder, including value
// objects rebuilt through their validating constructors.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(dto.Street, dto.City, dto.PostalCode, dto.Country)
	if err != nil {
		return nil, err
	}

	pricing, err := pricingToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, items, address,
		order.PaymentMethod(dto.PaymentMethod), pricing,
		order.Status(dto.Status),
		dto.Paid, dto.PaidAt, dto.PaymentReference,
		courierID,
		dto.Delivered, dto.DeliveredAt,
		dto.Version, dto.CreatedAt, dto.UpdatedAt,
	)
}

func pricingToDomain(dto OrderDTO) (order.Pricing, error) {
	itemsTotal, err := kernel.NewMoney(dto.ItemsTotal)
	if err != nil {
		return order.Pricing{}, err
	}

	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return order.Pricing{}, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return order.Pricing{}, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return order.Pricing{}, err
	}

	return order.NewPricing(itemsTotal, tax, deliveryFee, total)
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(productID, dto.Name, dto.Quantity, unitPrice, dto.ImageURL)
}
