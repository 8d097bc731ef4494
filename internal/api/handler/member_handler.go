package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

const maxPageSize = 100

// MemberHandler exposes member administration: listing, soft delete, and
// restore. Credential changes go through the auth service, never here.
type MemberHandler struct {
	members ports.MemberRepository
}

func NewMemberHandler(members ports.MemberRepository) *MemberHandler {
	return &MemberHandler{members: members}
}

// List returns a page of members.
//
// @Summary      List members
// @Tags         members
// @Produce      json
// @Param        search           query  string  false  "Partial match on username or email"
// @Param        include_deleted  query  bool    false  "Include soft-deleted members"
// @Param        page             query  int     false  "1-based page number"
// @Param        limit            query  int     false  "Page size (max 100)"
// @Success      200  {object}  listMembersResponse
// @Router       /admin/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	includeDeleted, _ := strconv.ParseBool(c.QueryParam("include_deleted"))

	members, total, err := h.members.List(c.Request().Context(), ports.ListMembersFilter{
		Search:         c.QueryParam("search"),
		IncludeDeleted: includeDeleted,
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}

	resp := listMembersResponse{
		Members: make([]memberResponse, 0, len(members)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}

	return c.JSON(http.StatusOK, resp)
}

// Delete soft-deletes a member. The record stays behind its unique indexes
// so the username and email cannot be re-registered while deleted.
//
// @Summary      Soft-delete a member
// @Tags         members
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/members/{username} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	if err := h.members.SoftDelete(c.Request().Context(), c.Param("username")); err != nil {
		if err == domain.ErrMemberNotFound {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "member not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Restore reverses a soft delete.
//
// @Summary      Restore a soft-deleted member
// @Tags         members
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/members/{username}/restore [post]
func (h *MemberHandler) Restore(c echo.Context) error {
	if err := h.members.Restore(c.Request().Context(), c.Param("username")); err != nil {
		if err == domain.ErrMemberNotFound {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "member not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
