package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/petclinic-service/internal/service"
	"github.com/maxviazov/petclinic-service/pkg/response"
)

type VetHandler struct {
	svc service.VetService
}

func NewVetHandler(svc service.VetService) *VetHandler { return &VetHandler{svc: svc} }

func (h *VetHandler) Register(r *gin.RouterGroup) {
	r.GET("/vets.html", h.page)
	r.GET("/vets", h.list)
}

func (h *VetHandler) RegisterAPI(r *gin.RouterGroup) {
	r.GET("/vets", h.apiDirectory)
}

type vetQuery struct {
	LastName  string `form:"lastName"`
	Specialty string `form:"specialty"`
}

func (h *VetHandler) directory(c *gin.Context) (service.VetDirectory, int, error) {
	var q vetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return service.VetDirectory{}, 0, service.ErrInvalidInput
	}
	page, err := pageParam(c)
	if err != nil {
		return service.VetDirectory{}, 0, err
	}
	d, err := h.svc.Directory(c.Request.Context(), service.VetQuery{LastName: q.LastName, Specialty: q.Specialty, Page: page})
	return d, page, err
}

// page is the paginated vet listing with its specialty filter.
func (h *VetHandler) page(c *gin.Context) {
	d, page, err := h.directory(c)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "vets/list", directoryBag(d, page))
}

// list is the machine-readable vet list, unfiltered.
func (h *VetHandler) list(c *gin.Context) {
	vets, err := h.svc.ListVets(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, vets)
}

func (h *VetHandler) apiDirectory(c *gin.Context) {
	d, page, err := h.directory(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, directoryBag(d, page))
}

func directoryBag(d service.VetDirectory, page int) gin.H {
	return gin.H{
		"specialties":       d.Specialties,
		"selectedSpecialty": d.SelectedSpecialty,
		"lastName":          d.LastName,
		"currentPage":       page,
		"totalPages":        d.Vets.TotalPages(),
		"totalItems":        d.Vets.Total,
		"listVets":          d.Vets.Items,
	}
}
