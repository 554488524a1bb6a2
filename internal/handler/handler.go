package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/petclinic-service/internal/service"
)

// Services bundles the use cases the HTTP layer drives.
type Services struct {
	Owners service.OwnerService
	Pets   service.PetService
	Visits service.VisitService
	Vets   service.VetService
}

// Register mounts all public routes on the given engine: health checks, docs,
// the server-rendered pages and the JSON API.
func Register(r *gin.Engine, repo Pinger, svc Services) {
	r.SetHTMLTemplate(templates())
	r.NoRoute(func(c *gin.Context) { renderError(c, errPageNotFound) })

	h := NewHealthHandler(repo)

	// Health checks
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	owners := NewOwnerHandler(svc.Owners)
	pets := NewPetHandler(svc.Owners, svc.Pets)
	visits := NewVisitHandler(svc.Owners, svc.Pets, svc.Visits)
	vets := NewVetHandler(svc.Vets)

	r.GET("/", welcome)
	owners.Register(r.Group(""))
	pets.Register(r.Group(""))
	visits.Register(r.Group(""))
	vets.Register(r.Group(""))

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		owners.RegisterAPI(api)
		pets.RegisterAPI(api)
		visits.RegisterAPI(api)
		vets.RegisterAPI(api)
	}
}
