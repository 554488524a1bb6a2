package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/service"
	"github.com/maxviazov/petclinic-service/pkg/response"
)

type VisitHandler struct {
	owners service.OwnerService
	pets   service.PetService
	visits service.VisitService
}

func NewVisitHandler(owners service.OwnerService, pets service.PetService, visits service.VisitService) *VisitHandler {
	return &VisitHandler{owners: owners, pets: pets, visits: visits}
}

func (h *VisitHandler) Register(r *gin.RouterGroup) {
	r.GET("/owners/:ownerId/pets/:petId/visits/new", h.newForm)
	r.POST("/owners/:ownerId/pets/:petId/visits/new", h.create)
	r.GET("/visits/upcoming", h.upcoming)
}

func (h *VisitHandler) RegisterAPI(r *gin.RouterGroup) {
	r.POST("/owners/:ownerId/pets/:petId/visits", h.apiCreate)
	r.GET("/visits/upcoming", h.apiUpcoming)
}

type visitForm struct {
	Date        string `form:"date" json:"date"`
	Description string `form:"description" json:"description"`
}

func (f visitForm) input() (service.VisitInput, []service.FieldError) {
	in := service.VisitInput{Description: f.Description}
	if s := strings.TrimSpace(f.Date); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return in, []service.FieldError{{Field: "date", Message: "invalid date"}}
		}
		in.Date = d
	}
	return in, nil
}

func (h *VisitHandler) formBag(c *gin.Context, ownerID, petID int64, f visitForm) (gin.H, error) {
	owner, err := h.owners.GetOwner(c.Request.Context(), ownerID)
	if err != nil {
		return nil, err
	}
	pet, err := h.pets.GetPet(c.Request.Context(), ownerID, petID)
	if err != nil {
		return nil, err
	}
	return gin.H{"owner": owner, "pet": pet, "visit": f}, nil
}

func (h *VisitHandler) newForm(c *gin.Context) {
	ownerID, ok1 := idParam(c, "ownerId")
	petID, ok2 := idParam(c, "petId")
	if !ok1 || !ok2 {
		renderError(c, repository.ErrNotFound)
		return
	}
	bag, err := h.formBag(c, ownerID, petID, visitForm{Date: time.Now().Format(dateLayout)})
	if err != nil {
		renderError(c, err)
		return
	}
	renderForm(c, "visits/form", bag, nil)
}

func (h *VisitHandler) create(c *gin.Context) {
	ownerID, ok1 := idParam(c, "ownerId")
	petID, ok2 := idParam(c, "petId")
	if !ok1 || !ok2 {
		renderError(c, repository.ErrNotFound)
		return
	}
	var f visitForm
	if err := c.ShouldBind(&f); err != nil {
		renderError(c, service.ErrInvalidInput)
		return
	}
	in, ferrs := f.input()
	if len(ferrs) == 0 {
		_, err := h.visits.AddVisit(c.Request.Context(), ownerID, petID, in)
		if err != nil && len(service.FieldErrors(err)) == 0 {
			renderError(c, err)
			return
		}
		ferrs = service.FieldErrors(err)
	}
	if len(ferrs) > 0 {
		bag, err := h.formBag(c, ownerID, petID, f)
		if err != nil {
			renderError(c, err)
			return
		}
		renderForm(c, "visits/form", bag, ferrs)
		return
	}
	setFlash(c, flashSuccess, "Your visit has been booked")
	c.Redirect(http.StatusFound, ownerURL(ownerID))
}

// daysParam reads the upcoming window length; absent means the default week.
func daysParam(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("days")
	if !ok || raw == "" {
		return service.DefaultUpcomingDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam("days", "must be a number")
	}
	return n, nil
}

func (h *VisitHandler) upcoming(c *gin.Context) {
	days, err := daysParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	up, err := h.visits.UpcomingVisits(c.Request.Context(), days)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "visits/upcoming", gin.H{
		"visits": up.Visits,
		"days":   up.Days,
		"from":   up.From,
		"to":     up.To,
	})
}

func (h *VisitHandler) apiUpcoming(c *gin.Context) {
	days, err := daysParam(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	up, err := h.visits.UpcomingVisits(c.Request.Context(), days)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, up)
}

func (h *VisitHandler) apiCreate(c *gin.Context) {
	ownerID, ok1 := idParam(c, "ownerId")
	petID, ok2 := idParam(c, "petId")
	if !ok1 || !ok2 {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	var f visitForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	in, ferrs := f.input()
	if len(ferrs) > 0 {
		response.WriteError(c, invalidFields(ferrs))
		return
	}
	v, err := h.visits.AddVisit(c.Request.Context(), ownerID, petID, in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", apiURL(petURL(ownerID, petID)))
	response.WriteData(c, http.StatusCreated, v)
}
