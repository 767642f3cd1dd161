package commands_test

import (
	"github.com/stretchr/testify/mock"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
)

type deliveryMocks struct {
	factory      *MockUoWFactory
	uow          *MockUoW
	courierRepo  *MockCourierRepository
	deliveryRepo *MockDeliveryRepository
}

// newDeliveryMocks expects a transaction that locks del and, when c is not
// nil, its courier.
func newDeliveryMocks(del *delivery.Delivery, c *courier.Courier) deliveryMocks {
	m := deliveryMocks{
		factory:      new(MockUoWFactory),
		uow:          new(MockUoW),
		courierRepo:  new(MockCourierRepository),
		deliveryRepo: new(MockDeliveryRepository),
	}
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.uow.On("CourierRepository").Return(m.courierRepo).Once()
	m.uow.On("DeliveryRepository").Return(m.deliveryRepo).Once()
	m.uow.On("Rollback", mock.Anything).Return(nil).Once()
	m.deliveryRepo.On("GetForUpdate", mock.Anything, del.ID()).Return(del, nil).Once()
	if c != nil {
		m.courierRepo.On("GetForUpdate", mock.Anything, c.ID()).Return(c, nil).Once()
	}
	return m
}

func (m deliveryMocks) expectSaved(del *delivery.Delivery, c *courier.Courier) {
	m.deliveryRepo.On("Update", mock.Anything, del).Return(nil).Once()
	if c != nil {
		m.courierRepo.On("Update", mock.Anything, c).Return(nil).Once()
	}
	m.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (m deliveryMocks) assert(t mock.TestingT) {
	m.uow.AssertExpectations(t)
	m.courierRepo.AssertExpectations(t)
	m.deliveryRepo.AssertExpectations(t)
}
