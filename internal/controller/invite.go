package controller

import (
	"errors"
	"net/http"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type inviteRoutesHandler struct {
	inviteService service.Invite
	validate      *validator.Validate
}

func newInviteRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *inviteRoutesHandler {
	h := &inviteRoutesHandler{inviteService: services.Invite, validate: v}
	outer.POST("/packages/:packageId/invites", h.PostInvites)
	outer.GET("/packages/:packageId/invites", h.GetInvites)
	outer.GET("/invites/:inviteId", h.GetInvite)
	outer.PUT("/invites/:inviteId/view", h.RecordView)
	outer.PUT("/invites/:inviteId/decline", h.RecordDecline)
	outer.PUT("/invites/:inviteId/require_account", h.SetRequireAccount)

	return h
}

type inviteItemInput struct {
	CompanyId   string `json:"companyId" validate:"omitempty,uuid"`
	ContactId   string `json:"contactId" validate:"omitempty,uuid"`
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"displayName" validate:"max=200"`
}

type postInvitesInput struct {
	Items      []inviteItemInput `json:"items" validate:"required,min=1,dive"`
	SendEmails bool              `json:"sendEmails"`
}

func (h *inviteRoutesHandler) PostInvites(c echo.Context) error {
	var input postInvitesInput
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

	model := &entity.CreateInvitesInput{
		BidPackageId: c.Param("packageId"),
		SendEmails:   input.SendEmails,
	}
	for _, item := range input.Items {
		model.Items = append(model.Items, entity.InviteItemInput{
			CompanyId:   item.CompanyId,
			ContactId:   item.ContactId,
			Email:       item.Email,
			DisplayName: item.DisplayName,
		})
	}

	result, err := h.inviteService.CreateInvites(c.Request().Context(), model)
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

	if e := c.JSON(http.StatusOK, result); e != nil {
		return e
	}

	return nil
}

type getInvitesInput struct {
	Limit  int `query:"limit" validate:"gte=0,lte=100"`
	Offset int `query:"offset" validate:"gte=0"`
}

func (h *inviteRoutesHandler) GetInvites(c echo.Context) error {
	input := getInvitesInput{Limit: defaultLimit, Offset: defaultOffset}
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

	invites, err := h.inviteService.GetInvitesByPackage(c.Request().Context(), c.Param("packageId"),
		entity.NewPaginationInput(input.Limit, input.Offset))
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

	if e := c.JSON(http.StatusOK, invites); e != nil {
		return e
	}

	return nil
}

func (h *inviteRoutesHandler) GetInvite(c echo.Context) error {
	invite, err := h.inviteService.GetInviteById(c.Request().Context(), c.Param("inviteId"))
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

	if e := c.JSON(http.StatusOK, invite); e != nil {
		return e
	}

	return nil
}

func (h *inviteRoutesHandler) RecordView(c echo.Context) error {
	invite, err := h.inviteService.RecordView(c.Request().Context(), c.Param("inviteId"))
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

	if e := c.JSON(http.StatusOK, invite); e != nil {
		return e
	}

	return nil
}

func (h *inviteRoutesHandler) RecordDecline(c echo.Context) error {
	invite, err := h.inviteService.RecordDecline(c.Request().Context(), c.Param("inviteId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid invite with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrInviteAlreadySubmitted):
			if e := c.JSON(http.StatusConflict, errorResponse{"Invite with a submitted bid cannot be declined"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, invite); e != nil {
		return e
	}

	return nil
}

type setRequireAccountInput struct {
	Enforced *bool `json:"enforced" validate:"required"`
}

func (h *inviteRoutesHandler) SetRequireAccount(c echo.Context) error {
	var input setRequireAccountInput
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

	invite, err := h.inviteService.SetRequireAccount(c.Request().Context(), c.Param("inviteId"), *input.Enforced)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid invite with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrNoAccessIssued):
			if e := c.JSON(http.StatusConflict, errorResponse{"No access has been issued for this invite yet"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, invite); e != nil {
		return e
	}

	return nil
}
