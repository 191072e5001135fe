package handler

import (
	"context"
	"net/http"

	"github.com/docshare/docshare/backend/go-services/internal/apperr"
	"github.com/docshare/docshare/backend/go-services/internal/document"
	"github.com/docshare/docshare/backend/go-services/internal/document/service"
	"github.com/docshare/docshare/backend/go-services/internal/models"
	"github.com/docshare/docshare/backend/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// AdminRole is required for the /admin routes.
const AdminRole = "admin"

// Identity resolves verified token claims into the stored user.
type Identity interface {
	UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.User, error)
}

type documentHandler struct {
	svc      service.Service
	identity Identity
}

// RegisterDocumentRoutes mounts the document API on rg. auth verifies bearer
// tokens and stores their claims; when nil, protected routes answer 401.
func RegisterDocumentRoutes(rg *gin.RouterGroup, svc service.Service, identity Identity, auth gin.HandlerFunc) {
	h := &documentHandler{svc: svc, identity: identity}
	if auth == nil {
		auth = func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication not configured"})
		}
	}

	docs := rg.Group("/documents")
	docs.GET("", h.listApproved)
	docs.GET("/subject/:subjectId", h.listBySubject)
	docs.GET("/:id", h.get)
	docs.POST("", auth, h.create)
	docs.PATCH("/:id", auth, h.update)
	docs.DELETE("/:id", auth, h.delete)

	admin := rg.Group("/admin/documents", auth, middleware.RequireRole(AdminRole))
	admin.GET("", h.listByAdmin)
	admin.POST("", h.createByAdmin)
	admin.PATCH("/:id/approve", h.approve)
}

func writeError(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		c.JSON(ae.Status, ae)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func badInput(c *gin.Context, err error) {
	writeError(c, apperr.BadRequestWithCause(apperr.KindValidation, err))
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func bindPage(c *gin.Context) (document.Page, bool) {
	var page document.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		badInput(c, err)
		return page, false
	}
	return page, true
}

// caller returns the stored id of the authenticated user.
func (h *documentHandler) caller(c *gin.Context) (string, bool) {
	v, _ := c.Get("claims")
	claims, _ := v.(map[string]interface{})
	u, err := h.identity.UpsertFromClaims(c.Request.Context(), claims)
	if err != nil {
		writeError(c, apperr.BadRequest(apperr.KindPersistence, err))
		return "", false
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token has no subject"})
		return "", false
	}
	return u.ID, true
}

func (h *documentHandler) listApproved(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	list, err := h.svc.ListApproved(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *documentHandler) get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if v == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *documentHandler) listBySubject(c *gin.Context) {
	res, err := h.svc.ListBySubject(c.Request.Context(), c.Param("subjectId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *documentHandler) create(c *gin.Context) {
	var in document.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	author, ok := h.caller(c)
	if !ok {
		return
	}
	d, err := h.svc.Create(c.Request.Context(), in, author)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *documentHandler) update(c *gin.Context) {
	var in document.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	if d == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *documentHandler) delete(c *gin.Context) {
	d, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if d == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *documentHandler) listByAdmin(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	params := map[string]string{}
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	f, err := document.ParseFilter(params)
	if err != nil {
		badInput(c, err)
		return
	}
	list, err := h.svc.ListByAdmin(c.Request.Context(), f, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *documentHandler) createByAdmin(c *gin.Context) {
	var in document.AdminCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	author, ok := h.caller(c)
	if !ok {
		return
	}
	d, err := h.svc.CreateByAdmin(c.Request.Context(), in, author)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *documentHandler) approve(c *gin.Context) {
	var in document.ApproveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	d, err := h.svc.Approve(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	if d == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, d)
}
