package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/service"
	"github.com/maxviazov/petclinic-service/pkg/response"
)

type OwnerHandler struct {
	svc service.OwnerService
}

func NewOwnerHandler(svc service.OwnerService) *OwnerHandler { return &OwnerHandler{svc: svc} }

// Register mounts the owner pages.
func (h *OwnerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/owners")
	{
		g.GET("", h.list)
		g.GET("/find", h.findForm)
		g.GET("/new", h.newForm)
		g.POST("/new", h.create)
		// ownerId is shared with the nested pet and visit routes.
		g.GET("/:ownerId", h.show)
		g.GET("/:ownerId/edit", h.editForm)
		g.POST("/:ownerId/edit", h.update)
	}
}

// RegisterAPI mounts the owner JSON endpoints.
func (h *OwnerHandler) RegisterAPI(r *gin.RouterGroup) {
	g := r.Group("/owners")
	{
		g.GET("", h.apiList)
		g.POST("", h.apiCreate)
		g.GET("/:ownerId", h.apiGet)
		g.PUT("/:ownerId", h.apiUpdate)
	}
}

type ownerSearchForm struct {
	LastName  string `form:"lastName" json:"lastName"`
	Telephone string `form:"telephone" json:"telephone"`
	City      string `form:"city" json:"city"`
}

type ownerForm struct {
	ID        int64  `form:"id" json:"id,omitempty"`
	FirstName string `form:"firstName" json:"firstName"`
	LastName  string `form:"lastName" json:"lastName"`
	Address   string `form:"address" json:"address"`
	City      string `form:"city" json:"city"`
	Telephone string `form:"telephone" json:"telephone"`
}

func (f ownerForm) input() service.OwnerInput {
	return service.OwnerInput{
		ID:        f.ID,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Address:   f.Address,
		City:      f.City,
		Telephone: f.Telephone,
	}
}

func ownerFormOf(o model.Owner) ownerForm {
	return ownerForm{ID: o.ID, FirstName: o.FirstName, LastName: o.LastName, Address: o.Address, City: o.City, Telephone: o.Telephone}
}

func (h *OwnerHandler) findForm(c *gin.Context) {
	renderForm(c, "owners/find", gin.H{"owner": ownerSearchForm{}}, nil)
}

// list is the search endpoint behind the find form: one hit redirects to the owner,
// no hit goes back to the form with a not-found message.
func (h *OwnerHandler) list(c *gin.Context) {
	var q ownerSearchForm
	if err := c.ShouldBindQuery(&q); err != nil {
		renderError(c, service.ErrInvalidInput)
		return
	}
	page, err := pageParam(c)
	if err != nil {
		renderError(c, err)
		return
	}

	res, err := h.svc.FindOwners(c.Request.Context(), service.OwnerQuery{
		LastName: q.LastName, Telephone: q.Telephone, City: q.City, Page: page,
	})
	if err != nil {
		if fe := service.FieldErrors(err); len(fe) > 0 && fe[0].Field != "page" {
			renderForm(c, "owners/find", gin.H{"owner": q}, fe)
			return
		}
		renderError(c, err)
		return
	}

	switch res.Total {
	case 0:
		renderForm(c, "owners/find", gin.H{"owner": q}, []service.FieldError{{Field: "lastName", Message: "has not been found"}})
		return
	case 1:
		if len(res.Items) == 1 {
			c.Redirect(http.StatusFound, ownerURL(res.Items[0].ID))
			return
		}
	}

	render(c, http.StatusOK, "owners/list", gin.H{
		"lastName":    q.LastName,
		"telephone":   q.Telephone,
		"city":        q.City,
		"currentPage": page,
		"totalPages":  res.TotalPages(),
		"totalItems":  res.Total,
		"listOwners":  res.Items,
	})
}

func (h *OwnerHandler) show(c *gin.Context) {
	id, ok := idParam(c, "ownerId")
	if !ok {
		renderError(c, repository.ErrNotFound)
		return
	}
	owner, err := h.svc.GetOwner(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "owners/details", gin.H{"owner": owner})
}

func (h *OwnerHandler) newForm(c *gin.Context) {
	renderForm(c, "owners/form", gin.H{"owner": ownerForm{}, "isNew": true}, nil)
}

func (h *OwnerHandler) create(c *gin.Context) {
	var f ownerForm
	if err := c.ShouldBind(&f); err != nil {
		renderError(c, service.ErrInvalidInput)
		return
	}
	f.ID = 0
	owner, err := h.svc.CreateOwner(c.Request.Context(), f.input())
	if err != nil {
		if fe := service.FieldErrors(err); len(fe) > 0 {
			renderForm(c, "owners/form", gin.H{"owner": f, "isNew": true}, fe)
			return
		}
		renderError(c, err)
		return
	}
	setFlash(c, flashSuccess, "New Owner Created")
	c.Redirect(http.StatusFound, ownerURL(owner.ID))
}

func (h *OwnerHandler) editForm(c *gin.Context) {
	id, ok := idParam(c, "ownerId")
	if !ok {
		renderError(c, repository.ErrNotFound)
		return
	}
	owner, err := h.svc.GetOwner(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	renderForm(c, "owners/form", gin.H{"owner": ownerFormOf(owner), "isNew": false}, nil)
}

func (h *OwnerHandler) update(c *gin.Context) {
	id, ok := idParam(c, "ownerId")
	if !ok {
		renderError(c, repository.ErrNotFound)
		return
	}
	var f ownerForm
	if err := c.ShouldBind(&f); err != nil {
		renderError(c, service.ErrInvalidInput)
		return
	}
	_, err := h.svc.UpdateOwner(c.Request.Context(), id, f.input())
	switch {
	case err == nil:
		setFlash(c, flashSuccess, "Owner Values Updated")
		c.Redirect(http.StatusFound, ownerURL(id))
	case errors.Is(err, service.ErrIdentityMismatch):
		setFlash(c, flashError, "The owner ID in the form does not match the URL.")
		c.Redirect(http.StatusFound, ownerEditURL(id))
	case len(service.FieldErrors(err)) > 0:
		f.ID = id
		renderForm(c, "owners/form", gin.H{"owner": f, "isNew": false}, service.FieldErrors(err))
	default:
		renderError(c, err)
	}
}

// ownerPage is the JSON shape of a page of owners.
type ownerPage struct {
	Items       []model.Owner `json:"items"`
	Total       int           `json:"total"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
}

func (h *OwnerHandler) apiList(c *gin.Context) {
	var q ownerSearchForm
	if err := c.ShouldBindQuery(&q); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	page, err := pageParam(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.FindOwners(c.Request.Context(), service.OwnerQuery{
		LastName: q.LastName, Telephone: q.Telephone, City: q.City, Page: page,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, ownerPage{Items: res.Items, Total: res.Total, CurrentPage: page, TotalPages: res.TotalPages()})
}

func (h *OwnerHandler) apiGet(c *gin.Context) {
	id, ok := idParam(c, "ownerId")
	if !ok {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	owner, err := h.svc.GetOwner(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, owner)
}

func (h *OwnerHandler) apiCreate(c *gin.Context) {
	var in service.OwnerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	in.ID = 0
	owner, err := h.svc.CreateOwner(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", apiURL(ownerURL(owner.ID)))
	response.WriteData(c, http.StatusCreated, owner)
}

func (h *OwnerHandler) apiUpdate(c *gin.Context) {
	id, ok := idParam(c, "ownerId")
	if !ok {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	var in service.OwnerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	owner, err := h.svc.UpdateOwner(c.Request.Context(), id, in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, owner)
}
