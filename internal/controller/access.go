package controller

import (
	"context"
	"errors"
	"net/http"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type accessRoutesHandler struct {
	accessService service.Access
	validate      *validator.Validate
}

func newAccessRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *accessRoutesHandler {
	h := &accessRoutesHandler{accessService: services.Access, validate: v}
	outer.POST("/invites/:inviteId/access/link", h.IssueLinkGrant)
	outer.POST("/invites/:inviteId/access/account", h.LinkAccountGrant)
	outer.PUT("/invites/:inviteId/access/:channel/pause", h.PauseChannel)
	outer.PUT("/invites/:inviteId/access/:channel/resume", h.ResumeChannel)
	outer.PUT("/invites/:inviteId/access/:channel/revoke", h.RevokeChannel)
	outer.GET("/invites/:inviteId/access/counts", h.GetCounts)
	outer.GET("/access/verify", h.Verify)

	return h
}

func (h *accessRoutesHandler) IssueLinkGrant(c echo.Context) error {
	grant, err := h.accessService.IssueLinkGrant(c.Request().Context(), c.Param("inviteId"))
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

	if e := c.JSON(http.StatusOK, grant); e != nil {
		return e
	}

	return nil
}

type linkAccountGrantInput struct {
	UserId string `json:"userId" validate:"required,uuid"`
}

func (h *accessRoutesHandler) LinkAccountGrant(c echo.Context) error {
	var input linkAccountGrantInput
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

	counts, err := h.accessService.LinkAccountGrant(c.Request().Context(), c.Param("inviteId"), input.UserId)
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

	if e := c.JSON(http.StatusOK, counts); e != nil {
		return e
	}

	return nil
}

func (h *accessRoutesHandler) PauseChannel(c echo.Context) error {
	return h.transitionChannel(c, h.accessService.PauseChannel)
}

func (h *accessRoutesHandler) ResumeChannel(c echo.Context) error {
	return h.transitionChannel(c, h.accessService.ResumeChannel)
}

func (h *accessRoutesHandler) RevokeChannel(c echo.Context) error {
	return h.transitionChannel(c, h.accessService.RevokeChannel)
}

func (h *accessRoutesHandler) transitionChannel(c echo.Context,
	op func(ctx context.Context, inviteId string, channel string) (*entity.AccessCounts, error)) error {
	counts, err := op(c.Request().Context(), c.Param("inviteId"), c.Param("channel"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid invite with given id"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrInvalidChannel):
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Channel must be one of: link, account"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, counts); e != nil {
		return e
	}

	return nil
}

func (h *accessRoutesHandler) GetCounts(c echo.Context) error {
	counts, err := h.accessService.Counts(c.Request().Context(), c.Param("inviteId"))
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

	if e := c.JSON(http.StatusOK, counts); e != nil {
		return e
	}

	return nil
}

type verifyAccessInput struct {
	Token  string `query:"token" validate:"required"`
	UserId string `query:"userId" validate:"omitempty,uuid"`
}

func (h *accessRoutesHandler) Verify(c echo.Context) error {
	var input verifyAccessInput
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

	verification, err := h.accessService.Verify(c.Request().Context(), input.Token, input.UserId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessNotFound):
			if e := c.JSON(http.StatusNotFound, errorResponse{"Unknown access token"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrAccessPaused):
			if e := c.JSON(http.StatusForbidden, errorResponse{"Access through this channel is paused"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrAccessRevoked):
			if e := c.JSON(http.StatusForbidden, errorResponse{"Access through this channel has been revoked"}); e != nil {
				return e
			}
		case errors.Is(err, service.ErrAccountRequired):
			if e := c.JSON(http.StatusForbidden, errorResponse{"This invite requires a linked account"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}

	if e := c.JSON(http.StatusOK, verification); e != nil {
		return e
	}

	return nil
}
