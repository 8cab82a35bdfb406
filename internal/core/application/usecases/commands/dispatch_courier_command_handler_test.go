package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/pkg/errs"
)

func TestDispatchCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := newTestOrder(t)
	assignee := newTestCourier(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("GetFirstUnassigned", mock.Anything).Return(aggregate, nil).Once(),
		courierRepo.On("GetAllFree", mock.Anything).Return([]*courier.Courier{assignee}, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		courierRepo.On("Update", mock.Anything, assignee).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockStatusPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewDispatchCourierCommandHandler(factory, publisher, nil)
	err := h.Handle(ctx, commands.NewDispatchCourierCommand())
	require.NoError(t, err)
	require.NotNil(t, aggregate.Courier())
	require.True(t, aggregate.Courier().IsEqual(assignee.ID()))
	require.True(t, assignee.IsBusy())
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDispatchCourierCommandHandler_Handle_NoUnassignedOrder(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("GetFirstUnassigned", mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("order", nil)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchCourierCommandHandler(factory, nil, nil)
	err := h.Handle(ctx, commands.NewDispatchCourierCommand())
	require.ErrorIs(t, err, commands.ErrNoUnassignedOrderFound)
	courierRepo.AssertNotCalled(t, "GetAllFree", mock.Anything)
}

func TestDispatchCourierCommandHandler_Handle_NoFreeCouriers(t *testing.T) {
	ctx := t.Context()
	aggregate := newTestOrder(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("GetFirstUnassigned", mock.Anything).Return(aggregate, nil).Once(),
		courierRepo.On("GetAllFree", mock.Anything).Return([]*courier.Courier{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchCourierCommandHandler(factory, nil, nil)
	err := h.Handle(ctx, commands.NewDispatchCourierCommand())
	require.ErrorIs(t, err, commands.ErrNoFreeCouriersFound)
	require.Nil(t, aggregate.Courier())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDispatchCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewDispatchCourierCommandHandler(new(MockUoWFactory), nil, nil)
	err := h.Handle(ctx, commands.DispatchCourierCommand{})
	require.Error(t, err)
}
