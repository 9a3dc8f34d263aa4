package controller

import (
	"errors"
	"net/http"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type submissionRoutesHandler struct {
	submissionService service.Submission
	validate          *validator.Validate
}

func newSubmissionRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *submissionRoutesHandler {
	h := &submissionRoutesHandler{submissionService: services.Submission, validate: v}
	outer.POST("/invites/:inviteId/submissions", h.PostSubmission)
	outer.GET("/invites/:inviteId/submissions", h.GetVersions)
	outer.GET("/submissions/:submissionId", h.GetSubmission)
	outer.GET("/packages/:packageId/submissions/current", h.GetCurrent)

	return h
}

type postSubmissionInput struct {
	TotalCents       *int64  `json:"totalCents" validate:"omitempty,gte=0"`
	ValidUntil       *string `json:"validUntil"`
	Exclusions       string  `json:"exclusions" validate:"max=5000"`
	Clarifications   string  `json:"clarifications" validate:"max=5000"`
	Notes            string  `json:"notes" validate:"max=5000"`
	SubmittedByName  string  `json:"submittedByName" validate:"max=200"`
	SubmittedByEmail string  `json:"submittedByEmail" validate:"omitempty,email"`
}

func (h *submissionRoutesHandler) PostSubmission(c echo.Context) error {
	var input postSubmissionInput
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

	model := &entity.SubmitBidInput{
		BidInviteId:      c.Param("inviteId"),
		TotalCents:       input.TotalCents,
		ValidUntil:       input.ValidUntil,
		Exclusions:       input.Exclusions,
		Clarifications:   input.Clarifications,
		Notes:            input.Notes,
		SubmittedByName:  input.SubmittedByName,
		SubmittedByEmail: input.SubmittedByEmail,
	}

	submission, err := h.submissionService.Submit(c.Request().Context(), model)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid invite with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrConcurrencyConflict):
			if e := c.JSON(http.StatusConflict, errorResponse{"Version numbering conflict, retry the request"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, submission); e != nil {
		return e
	}

	return nil
}

func (h *submissionRoutesHandler) GetVersions(c echo.Context) error {
	versions, err := h.submissionService.ListVersions(c.Request().Context(), c.Param("inviteId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid invite with given id"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, versions); e != nil {
		return e
	}

	return nil
}

func (h *submissionRoutesHandler) GetSubmission(c echo.Context) error {
	submission, err := h.submissionService.GetSubmissionById(c.Request().Context(), c.Param("submissionId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no submission with given id"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, submission); e != nil {
		return e
	}

	return nil
}

func (h *submissionRoutesHandler) GetCurrent(c echo.Context) error {
	submissions, err := h.submissionService.ListCurrentByPackage(c.Request().Context(), c.Param("packageId"))
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

	if e := c.JSON(http.StatusOK, submissions); e != nil {
		return e
	}

	return nil
}
