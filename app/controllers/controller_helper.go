package controllers

import (
	"fmt"

	"github.com/JonasWeidner/ShopFox/internal/pkg/database"
	"github.com/JonasWeidner/ShopFox/internal/pkg/payments"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	paymentClient     *payments.Client
	paymentService    *payments.Service
	paymentDispatcher *payments.Dispatcher
)

// InitializePaymentControllers wires the payment controllers with an
// explicitly constructed provider client and service. Called once from the
// router during startup.
func InitializePaymentControllers() error {
	client, err := payments.NewClientFromEnv()
	if err != nil {
		return fmt.Errorf("init payment controllers: %w", err)
	}

	paymentClient = client
	paymentService = payments.NewServiceFromDB(database.GetDB(), client)
	paymentDispatcher = paymentService.Dispatcher()
	return nil
}
