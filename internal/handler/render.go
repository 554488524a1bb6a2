package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/maxviazov/petclinic-service/internal/service"
	"github.com/maxviazov/petclinic-service/pkg/response"
)

//go:embed templates/*.html
var templateFS embed.FS

const dateLayout = "2006-01-02"

var errPageNotFound = errors.New("page not found")

func templates() *template.Template {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(dateLayout)
		},
		"add": func(a, b int) int { return a + b },
		"pages": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// render answers with the named view, or with the same attribute bag as JSON when the client asks for it.
func render(c *gin.Context, status int, view string, bag gin.H) {
	if _, ok := bag["flash"]; !ok {
		bag["flash"] = popFlash(c)
	}
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{binding.MIMEHTML, binding.MIMEJSON},
		HTMLName: view,
		HTMLData: bag,
		JSONData: bag,
	})
}

// renderForm renders a form view with its field errors keyed by field name.
func renderForm(c *gin.Context, view string, bag gin.H, fieldErrs []service.FieldError) {
	errs := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field]; !seen {
			errs[fe.Field] = fe.Message
		}
	}
	bag["errors"] = errs
	render(c, http.StatusOK, view, bag)
}

// renderError shows the error page with the status MapError picks.
func renderError(c *gin.Context, err error) {
	status, payload := response.MapError(err)
	if errors.Is(err, errPageNotFound) {
		status, payload = http.StatusNotFound, response.ErrorPayload{Error: "not_found"}
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	render(c, status, "error", gin.H{
		"status":       status,
		"error":        payload.Error,
		"message":      payload.Message,
		"field_errors": payload.FieldErrors,
	})
	c.Abort()
}

// pageParam reads a 1-based page number; absent means 1, anything non-numeric is a bad request.
func pageParam(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("page", "1")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam("page", "must be a number")
	}
	return n, nil
}

// idParam parses a numeric path parameter. Anything unparsable cannot name an entity.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidParam(field, msg string) error {
	return invalidFields([]service.FieldError{{Field: field, Message: msg}})
}

func invalidFields(fields []service.FieldError) error {
	return &paramError{fields: fields}
}

// paramError is a bad request detected before any service call.
type paramError struct{ fields []service.FieldError }

func (e *paramError) Error() string                { return service.ErrInvalidInput.Error() }
func (e *paramError) Unwrap() error                { return service.ErrInvalidInput }
func (e *paramError) Fields() []service.FieldError { return e.fields }

func welcome(c *gin.Context) {
	render(c, http.StatusOK, "welcome", gin.H{})
}
