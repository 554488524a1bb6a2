package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/service"
	"github.com/maxviazov/petclinic-service/pkg/response"
)

type PetHandler struct {
	owners service.OwnerService
	pets   service.PetService
}

func NewPetHandler(owners service.OwnerService, pets service.PetService) *PetHandler {
	return &PetHandler{owners: owners, pets: pets}
}

func (h *PetHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/owners/:ownerId/pets")
	{
		g.GET("/new", h.newForm)
		g.POST("/new", h.create)
		g.GET("/:petId/edit", h.editForm)
		g.POST("/:petId/edit", h.update)
	}
}

func (h *PetHandler) RegisterAPI(r *gin.RouterGroup) {
	r.GET("/pettypes", h.apiTypes)
	g := r.Group("/owners/:ownerId/pets")
	{
		g.POST("", h.apiCreate)
		g.GET("/:petId", h.apiGet)
		g.PUT("/:petId", h.apiUpdate)
	}
}

// petForm is bound as strings so that a malformed date or type comes back as a field
// message instead of a failed bind.
type petForm struct {
	ID        int64  `form:"id" json:"id,omitempty"`
	Name      string `form:"name" json:"name"`
	BirthDate string `form:"birthDate" json:"birthDate"`
	Type      string `form:"type" json:"type"`
}

func (f petForm) input() (service.PetInput, []service.FieldError) {
	in := service.PetInput{ID: f.ID, Name: f.Name}
	var ferrs []service.FieldError
	if s := strings.TrimSpace(f.BirthDate); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "birthDate", Message: "invalid date"})
		}
		in.BirthDate = d
	}
	if s := strings.TrimSpace(f.Type); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "type", Message: "unknown pet type"})
		}
		in.TypeID = id
	}
	return in, ferrs
}

func petFormOf(p model.Pet) petForm {
	return petForm{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate.Format(dateLayout),
		Type:      strconv.FormatInt(p.Type.ID, 10),
	}
}

// formBag loads what every pet form shows: the owner and the type choices.
func (h *PetHandler) formBag(c *gin.Context, ownerID int64, f petForm, isNew bool) (gin.H, error) {
	owner, err := h.owners.GetOwner(c.Request.Context(), ownerID)
	if err != nil {
		return nil, err
	}
	types, err := h.pets.ListPetTypes(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"owner": owner, "pet": f, "types": types, "isNew": isNew}, nil
}

func (h *PetHandler) newForm(c *gin.Context) {
	ownerID, ok := idParam(c, "ownerId")
	if !ok {
		renderError(c, repository.ErrNotFound)
		return
	}
	bag, err := h.formBag(c, ownerID, petForm{}, true)
	if err != nil {
		renderError(c, err)
		return
	}
	renderForm(c, "pets/form", bag, nil)
}

func (h *PetHandler) create(c *gin.Context) {
	ownerID, ok := idParam(c, "ownerId")
	if !ok {
		renderError(c, repository.ErrNotFound)
		return
	}
	var f petForm
	if err := c.ShouldBind(&f); err != nil {
		renderError(c, service.ErrInvalidInput)
		return
	}
	f.ID = 0
	h.save(c, ownerID, f, true, func(in service.PetInput) error {
		_, err := h.pets.CreatePet(c.Request.Context(), ownerID, in)
		return err
	}, "New Pet has been Added")
}

func (h *PetHandler) editForm(c *gin.Context) {
	ownerID, ok1 := idParam(c, "ownerId")
	petID, ok2 := idParam(c, "petId")
	if !ok1 || !ok2 {
		renderError(c, repository.ErrNotFound)
		return
	}
	pet, err := h.pets.GetPet(c.Request.Context(), ownerID, petID)
	if err != nil {
		renderError(c, err)
		return
	}
	bag, err := h.formBag(c, ownerID, petFormOf(pet), false)
	if err != nil {
		renderError(c, err)
		return
	}
	renderForm(c, "pets/form", bag, nil)
}

func (h *PetHandler) update(c *gin.Context) {
	ownerID, ok1 := idParam(c, "ownerId")
	petID, ok2 := idParam(c, "petId")
	if !ok1 || !ok2 {
		renderError(c, repository.ErrNotFound)
		return
	}
	var f petForm
	if err := c.ShouldBind(&f); err != nil {
		renderError(c, service.ErrInvalidInput)
		return
	}
	if f.ID != 0 && f.ID != petID {
		setFlash(c, flashError, "The pet ID in the form does not match the URL.")
		c.Redirect(http.StatusFound, petEditURL(ownerID, petID))
		return
	}
	f.ID = petID
	h.save(c, ownerID, f, false, func(in service.PetInput) error {
		_, err := h.pets.UpdatePet(c.Request.Context(), ownerID, petID, in)
		return err
	}, "Pet details has been edited")
}

// save runs a pet write and either redirects to the owner or re-renders the form
// with every field message, the ones from parsing included.
func (h *PetHandler) save(c *gin.Context, ownerID int64, f petForm, isNew bool, write func(service.PetInput) error, done string) {
	in, parseErrs := f.input()
	var err error
	if len(parseErrs) == 0 {
		err = write(in)
	}
	ferrs := append(parseErrs, service.FieldErrors(err)...)
	if len(ferrs) == 0 && err != nil {
		renderError(c, err)
		return
	}
	if len(ferrs) > 0 {
		bag, berr := h.formBag(c, ownerID, f, isNew)
		if berr != nil {
			renderError(c, berr)
			return
		}
		renderForm(c, "pets/form", bag, ferrs)
		return
	}
	setFlash(c, flashSuccess, done)
	c.Redirect(http.StatusFound, ownerURL(ownerID))
}

func (h *PetHandler) apiTypes(c *gin.Context) {
	types, err := h.pets.ListPetTypes(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, types)
}

func (h *PetHandler) apiGet(c *gin.Context) {
	ownerID, ok1 := idParam(c, "ownerId")
	petID, ok2 := idParam(c, "petId")
	if !ok1 || !ok2 {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	pet, err := h.pets.GetPet(c.Request.Context(), ownerID, petID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, pet)
}

func (h *PetHandler) apiCreate(c *gin.Context) {
	ownerID, ok := idParam(c, "ownerId")
	if !ok {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	in, ok := bindPetJSON(c)
	if !ok {
		return
	}
	in.ID = 0
	pet, err := h.pets.CreatePet(c.Request.Context(), ownerID, in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", apiURL(petURL(ownerID, pet.ID)))
	response.WriteData(c, http.StatusCreated, pet)
}

func (h *PetHandler) apiUpdate(c *gin.Context) {
	ownerID, ok1 := idParam(c, "ownerId")
	petID, ok2 := idParam(c, "petId")
	if !ok1 || !ok2 {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	in, ok := bindPetJSON(c)
	if !ok {
		return
	}
	pet, err := h.pets.UpdatePet(c.Request.Context(), ownerID, petID, in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, pet)
}

// bindPetJSON accepts the same string shape as the HTML form.
func bindPetJSON(c *gin.Context) (service.PetInput, bool) {
	var f petForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return service.PetInput{}, false
	}
	in, ferrs := f.input()
	if len(ferrs) > 0 {
		response.WriteError(c, invalidFields(ferrs))
		return service.PetInput{}, false
	}
	return in, true
}
