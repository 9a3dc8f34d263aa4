package controller

import (
	"errors"
	"net/http"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidPackageRoutesHandler struct {
	packageService service.BidPackage
	validate       *validator.Validate
}

func newBidPackageRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidPackageRoutesHandler {
	h := &bidPackageRoutesHandler{packageService: services.BidPackage, validate: v}
	outer.POST("/packages/new", h.PostPackage)
	outer.GET("/packages", h.GetPackages)
	outer.GET("/packages/:packageId", h.GetPackage)
	outer.PATCH("/packages/:packageId/edit", h.EditPackage)
	outer.PUT("/packages/:packageId/status", h.UpdatePackageStatus)
	outer.PUT("/packages/:packageId/award", h.Award)
	outer.POST("/packages/:packageId/addenda", h.PostAddendum)
	outer.GET("/packages/:packageId/addenda", h.GetAddenda)

	return h
}

type postPackageInput struct {
	ProjectId    string  `json:"projectId" validate:"required,uuid"`
	Title        string  `json:"title" validate:"required,max=200"`
	Trade        string  `json:"trade" validate:"max=100"`
	Scope        string  `json:"scope" validate:"max=5000"`
	Instructions string  `json:"instructions" validate:"max=5000"`
	DueAt        *string `json:"dueAt"`
}

func (h *bidPackageRoutesHandler) PostPackage(c echo.Context) error {
	var input postPackageInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreatePackageInput{
		ProjectId: input.ProjectId, Title: input.Title, Trade: input.Trade,
		Scope: input.Scope, Instructions: input.Instructions, DueAt: input.DueAt,
	}

	pkg, err := h.packageService.CreatePackage(c.Request().Context(), model)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, pkg); e != nil {
		return e
	}

	return nil
}

type getPackagesInput struct {
	ProjectId string `query:"projectId" validate:"required,uuid"`
	Limit     int    `query:"limit" validate:"gte=0,lte=100"`
	Offset    int    `query:"offset" validate:"gte=0"`
}

func (h *bidPackageRoutesHandler) GetPackages(c echo.Context) error {
	input := getPackagesInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	packages, err := h.packageService.GetPackagesByProject(c.Request().Context(), input.ProjectId,
		entity.NewPaginationInput(input.Limit, input.Offset))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, packages); e != nil {
		return e
	}

	return nil
}

func (h *bidPackageRoutesHandler) GetPackage(c echo.Context) error {
	pkg, err := h.packageService.GetPackageById(c.Request().Context(), c.Param("packageId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid package with given id"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, pkg); e != nil {
		return e
	}

	return nil
}

type editPackageInput struct {
	Title        string  `json:"title" validate:"max=200"`
	Trade        string  `json:"trade" validate:"max=100"`
	Scope        string  `json:"scope" validate:"max=5000"`
	Instructions string  `json:"instructions" validate:"max=5000"`
	DueAt        *string `json:"dueAt"`
}

func (h *bidPackageRoutesHandler) EditPackage(c echo.Context) error {
	var input editPackageInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.UpdatePackageInput{
		Title: input.Title, Trade: input.Trade, Scope: input.Scope,
		Instructions: input.Instructions, DueAt: input.DueAt,
	}

	pkg, err := h.packageService.EditPackageById(c.Request().Context(), c.Param("packageId"), model)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid package with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrNoNewChanges):
			if e := c.JSON(http.StatusBadRequest, errorResponse{"No new values passed"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrPackageNotEdited):
			if e := c.JSON(http.StatusConflict, errorResponse{"Awarded or cancelled packages cannot be edited"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, pkg); e != nil {
		return e
	}

	return nil
}

type updatePackageStatusInput struct {
	Status string `json:"status" validate:"required,oneof=draft sent open closed cancelled"`
}

func (h *bidPackageRoutesHandler) UpdatePackageStatus(c echo.Context) error {
	var input updatePackageStatusInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pkg, err := h.packageService.UpdatePackageStatusById(c.Request().Context(), c.Param("packageId"), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid package with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrInvalidStatus):
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Status value is not allowed through this path"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrAlreadyAwarded):
			if e := c.JSON(http.StatusConflict, errorResponse{err.Error()}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, pkg); e != nil {
		return e
	}

	return nil
}

type awardInput struct {
	SubmissionId string `json:"submissionId" validate:"required,uuid"`
}

func (h *bidPackageRoutesHandler) Award(c echo.Context) error {
	var input awardInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	award, err := h.packageService.Award(c.Request().Context(), c.Param("packageId"), input.SubmissionId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid package with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrSubmissionNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no submission with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrSubmissionNotInPackage):
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Submission does not belong to this package"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrNotCurrent):
			if e := c.JSON(http.StatusConflict, errorResponse{"Submission has been superseded by a newer version"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrMissingTotal):
			if e := c.JSON(http.StatusConflict, errorResponse{"Submission has no total amount and cannot be awarded"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrAlreadyAwarded):
			if e := c.JSON(http.StatusConflict, errorResponse{err.Error()}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrConcurrencyConflict):
			if e := c.JSON(http.StatusConflict, errorResponse{"Lost the award race, package is being awarded"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, award); e != nil {
		return e
	}

	return nil
}

type postAddendumInput struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Message string   `json:"message" validate:"required,max=5000"`
	FileIds []string `json:"fileIds" validate:"dive,required"`
}

func (h *bidPackageRoutesHandler) PostAddendum(c echo.Context) error {
	var input postAddendumInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.IssueAddendumInput{
		BidPackageId: c.Param("packageId"),
		Title:        input.Title,
		Message:      input.Message,
		FileIds:      input.FileIds,
	}

	addendum, err := h.packageService.IssueAddendum(c.Request().Context(), model)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid package with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrPackageDraft):
			if e := c.JSON(http.StatusConflict, errorResponse{"Addenda can only be issued after invites are sent"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrPackageNotEdited):
			if e := c.JSON(http.StatusConflict, errorResponse{"Cancelled packages cannot receive addenda"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrConcurrencyConflict):
			if e := c.JSON(http.StatusConflict, errorResponse{"Addendum numbering conflict, retry the request"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, addendum); e != nil {
		return e
	}

	return nil
}

func (h *bidPackageRoutesHandler) GetAddenda(c echo.Context) error {
	addenda, err := h.packageService.GetAddendaByPackage(c.Request().Context(), c.Param("packageId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid package with given id"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, addenda); e != nil {
		return e
	}

	return nil
}
