package controller

import (
	"bid-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newBidPackageRoutesHandler(api, services, validate)
	newInviteRoutesHandler(api, services, validate)
	newAccessRoutesHandler(api, services, validate)
	newSubmissionRoutesHandler(api, services, validate)
}
