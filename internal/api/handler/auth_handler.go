package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardkit/member-system/internal/api/metrics"
	"github.com/boardkit/member-system/internal/api/session"
	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

// genericLoginError is the single message returned for every login denial.
// It never distinguishes unknown identifiers from wrong passwords, so the
// endpoint cannot be used to enumerate accounts.
const genericLoginError = "incorrect identifier or password"

type AuthHandler struct {
	selector ports.AuthSelector
	sessions *session.Manager
}

func NewAuthHandler(selector ports.AuthSelector, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{selector: selector, sessions: sessions}
}

// Register creates a new member account.
//
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Member registration details"
// @Success      201   {object}  memberResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	member, err := h.selector.Select().Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		switch err {
		case domain.ErrMemberExists:
			return c.JSON(http.StatusConflict, errorResponse{Error: "member already exists"})
		case domain.ErrInvalidCredentials:
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid registration details"})
		}
		return err
	}

	return c.JSON(http.StatusCreated, toMemberResponse(member))
}

// Login authenticates a member against the active auth service and issues
// a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	svc := h.selector.Select()
	mode := string(svc.Mode())

	member, err := svc.Attempt(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		switch err {
		case domain.ErrMemberNotFound, domain.ErrInvalidCredentials:
			metrics.LoginsTotal.WithLabelValues(mode, "denied").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: genericLoginError})
		}
		return err
	}

	token, err := h.sessions.Issue(member, svc.Mode(), req.Remember)
	if err != nil {
		return err
	}

	outcome := "success"
	if member.ID == "" && member.HashAlgorithm == domain.HashLegacy {
		// Authenticated by the legacy store; no current record exists yet.
		outcome = "legacy_success"
	}
	metrics.LoginsTotal.WithLabelValues(mode, outcome).Inc()

	return c.JSON(http.StatusOK, loginResponse{Token: token, Member: toMemberResponse(member)})
}

// Logout revokes the current session token.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	if err := h.sessions.Revoke(c.Request().Context(), token); err != nil {
		if err == session.ErrInvalidToken {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Mode reports the active authentication mode.
//
// @Summary      Active auth mode
// @Tags         auth
// @Produce      json
// @Success      200  {object}  modeResponse
// @Router       /auth/mode [get]
func (h *AuthHandler) Mode(c echo.Context) error {
	return c.JSON(http.StatusOK, modeResponse{Mode: string(h.selector.Select().Mode())})
}
