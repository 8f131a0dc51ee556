package employee

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndquang/staffdesk/internal/platform/authz"
	"github.com/ndquang/staffdesk/internal/platform/middleware"
	requestutil "github.com/ndquang/staffdesk/internal/platform/request"
	"github.com/ndquang/staffdesk/internal/platform/respond"
	"github.com/ndquang/staffdesk/internal/platform/sec"
	"github.com/ndquang/staffdesk/pkg/pagination"
)

// Handler implements the employee record HTTP endpoints.
//
// Every route requires a resolved identity; the per-endpoint privilege rules
// are composed explicitly inside each handler via the authz gates, so each
// endpoint's policy is readable at its call site.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireIdentity)

		protected.Get("/employee/{id}", handler.getEmployee)
		protected.Post("/employee", handler.createEmployee)
		protected.Patch("/employee/{id}", handler.patchEmployee)
		protected.Put("/employee/{id}", handler.putEmployee)
		protected.Delete("/employee/{id}", handler.deleteEmployee)
		protected.Get("/employees", handler.listEmployees)
	})
}

// getEmployee handles GET /employee/{id} — self or staff.
func (handler *Handler) getEmployee(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := authz.CanAccess(identity, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

type employeeRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Level    sec.Level `json:"level"`
}

// createEmployee handles POST /employee.
//
// Self-or-privileged: anyone may create a record carrying their own email,
// while creating records for others requires staff level.
func (handler *Handler) createEmployee(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	var input employeeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if NormalizeEmail(input.Email) != identity.Email {
		if err := authz.Require(identity, sec.LevelStaff); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	record, err := handler.service.Create(request.Context(), CreateInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Level:    input.Level,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}

type employeePatchRequest struct {
	Name     *string    `json:"name"`
	Email    *string    `json:"email"`
	Password *string    `json:"password"`
	Level    *sec.Level `json:"level"`
}

// patchEmployee handles PATCH /employee/{id} — self or staff, partial update.
func (handler *Handler) patchEmployee(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := authz.CanAccess(identity, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input employeePatchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Patch(request.Context(), id, PatchInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Level:    input.Level,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

// putEmployee handles PUT /employee/{id} — self or staff, full replace.
// created_at survives the replace.
func (handler *Handler) putEmployee(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := authz.CanAccess(identity, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input employeeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Replace(request.Context(), id, ReplaceInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Level:    input.Level,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

// deleteEmployee handles DELETE /employee/{id} — staff only.
func (handler *Handler) deleteEmployee(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	if err := authz.Require(identity, sec.LevelStaff); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// listEmployees handles GET /employees — staff only, paginated.
func (handler *Handler) listEmployees(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	if err := authz.Require(identity, sec.LevelStaff); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	records, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
