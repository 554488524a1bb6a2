package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/petclinic-service/internal/handler"
	"github.com/maxviazov/petclinic-service/internal/repository/memory"
	"github.com/maxviazov/petclinic-service/internal/seed"
	"github.com/maxviazov/petclinic-service/internal/service"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

// newEngine wires the full route table over a freshly seeded in-memory store.
func newEngine(t *testing.T, p handler.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds, err := seed.Default(time.Now())
	require.NoError(t, err)
	st := memory.New(ds)
	logger := zerolog.New(io.Discard)
	pets := service.NewPetService(memory.NewPetRepository(st), memory.NewOwnerRepository(st), logger)

	r := gin.New()
	r.Use(handler.RequestID())
	handler.Register(r, p, handler.Services{
		Owners: service.NewOwnerService(memory.NewOwnerRepository(st), memory.NewTxManager(st), logger),
		Pets:   pets,
		Visits: service.NewVisitService(memory.NewVisitRepository(st), pets, logger),
		Vets:   service.NewVetService(memory.NewVetRepository(st), logger),
	})
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func getJSON(t *testing.T, r http.Handler, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func postForm(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sendJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func flashCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "petclinic_flash" {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name string
		err  error
		path string
		want int
	}{
		{"live", nil, "/live", http.StatusOK},
		{"ready", nil, "/ready", http.StatusOK},
		{"ready_down", errors.New("db down"), "/ready", http.StatusServiceUnavailable},
		{"api_ready", nil, "/api/v1/health/ready", http.StatusOK},
		{"api_ready_down", errors.New("db down"), "/api/v1/health/ready", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(newEngine(t, stubPinger{err: tc.err}), tc.path)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestHealthPayload(t *testing.T) {
	var out struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	w := getJSON(t, newEngine(t, stubPinger{}), "/ready", &out)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", out.Status)
	assert.Equal(t, "ok", out.Checks["store"])

	w = get(newEngine(t, stubPinger{err: errors.New("db down")}), "/api/v1/health/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "unavailable", out.Status)
	assert.Equal(t, "db down", out.Checks["store"])

	var live struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	w = getJSON(t, newEngine(t, stubPinger{err: errors.New("db down")}), "/live", &live)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", live.Status)
	assert.NotEmpty(t, live.Uptime)
}

func TestNoRoute(t *testing.T) {
	w := get(newEngine(t, stubPinger{}), "/no-such")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Something happened")
}

func TestRequestID(t *testing.T) {
	r := newEngine(t, stubPinger{})

	w := get(r, "/live")
	assert.NotEmpty(t, w.Header().Get(handler.RequestIDHeader))

	id := "6b1b2f0e-2c4b-4e55-9a53-0a2b7f1d9c11"
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set(handler.RequestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(handler.RequestIDHeader))
}

func TestFindOwners(t *testing.T) {
	r := newEngine(t, stubPinger{})

	t.Run("single_result_redirects", func(t *testing.T) {
		w := get(r, "/owners?lastName=Franklin")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/owners/1", w.Header().Get("Location"))
	})

	t.Run("criteria_single_result_redirects", func(t *testing.T) {
		w := get(r, "/owners?lastName=Davis&telephone=6085551749")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/owners/2", w.Header().Get("Location"))
	})

	t.Run("no_result_back_to_form", func(t *testing.T) {
		w := get(r, "/owners?lastName=Nobody")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "has not been found")
		assert.Contains(t, w.Body.String(), `id="search-owner-form"`)
	})

	t.Run("non_numeric_telephone", func(t *testing.T) {
		w := get(r, "/owners?telephone=608-555")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Telephone must contain only numeric characters")
	})

	t.Run("list", func(t *testing.T) {
		w := get(r, "/owners?lastName=Davis")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Betty Davis")
		assert.Contains(t, body, "Harold Davis")
	})

	t.Run("bad_page", func(t *testing.T) {
		w := get(r, "/owners?page=two")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("json_bag", func(t *testing.T) {
		var bag struct {
			LastName    string `json:"lastName"`
			CurrentPage int    `json:"currentPage"`
			TotalPages  int    `json:"totalPages"`
			TotalItems  int    `json:"totalItems"`
			ListOwners  []struct {
				ID int64 `json:"id"`
			} `json:"listOwners"`
		}
		w := getJSON(t, r, "/owners?city=Madison", &bag)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 4, bag.TotalItems)
		assert.Equal(t, 1, bag.TotalPages)
		assert.Equal(t, 1, bag.CurrentPage)
		assert.Len(t, bag.ListOwners, 4)
	})

	t.Run("huge_page_is_empty", func(t *testing.T) {
		var bag struct {
			TotalItems int               `json:"totalItems"`
			ListOwners []json.RawMessage `json:"listOwners"`
		}
		w := getJSON(t, r, "/owners?page=1844674407370955163", &bag)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, bag.TotalItems)
		assert.Empty(t, bag.ListOwners)

		var page struct {
			Items []json.RawMessage `json:"items"`
			Total int               `json:"total"`
		}
		w = getJSON(t, r, "/api/v1/owners?page=1844674407370955163", &page)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("all_owners_paged", func(t *testing.T) {
		var bag struct {
			TotalPages int `json:"totalPages"`
			TotalItems int `json:"totalItems"`
			ListOwners []struct {
				ID int64 `json:"id"`
			} `json:"listOwners"`
		}
		w := getJSON(t, r, "/owners?page=2", &bag)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, bag.TotalItems)
		assert.Equal(t, 2, bag.TotalPages)
		require.Len(t, bag.ListOwners, 5)
		assert.Equal(t, int64(6), bag.ListOwners[0].ID)
	})
}

func TestOwnerDetails(t *testing.T) {
	r := newEngine(t, stubPinger{})

	w := get(r, "/owners/6")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Jean Coleman")
	assert.Contains(t, body, "Samantha")
	assert.Contains(t, body, "2013-01-01")

	assert.Equal(t, http.StatusNotFound, get(r, "/owners/999").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/owners/abc").Code)
}

func TestCreateOwner(t *testing.T) {
	r := newEngine(t, stubPinger{})

	w := postForm(r, "/owners/new", url.Values{
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"address":   {"12 St James Sq"},
		"city":      {"London"},
		"telephone": {"0123456789"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/owners/11", w.Header().Get("Location"))

	c := flashCookie(w)
	require.NotNil(t, c)
	req := httptest.NewRequest(http.MethodGet, "/owners/11", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Owner Created")
	assert.Contains(t, w.Body.String(), "Ada Lovelace")
}

func TestCreateOwner_Invalid(t *testing.T) {
	r := newEngine(t, stubPinger{})

	w := postForm(r, "/owners/new", url.Values{
		"firstName": {"Ada"},
		"lastName":  {""},
		"address":   {"12 St James Sq"},
		"city":      {"London"},
		"telephone": {"12345"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Telephone must be a 10-digit number")
	assert.Contains(t, body, "must not be blank")
	assert.Contains(t, body, `value="Ada"`)
}

func TestUpdateOwner(t *testing.T) {
	r := newEngine(t, stubPinger{})
	form := url.Values{
		"id":        {"1"},
		"firstName": {"George"},
		"lastName":  {"Franklin"},
		"address":   {"1 Main St"},
		"city":      {"Madison"},
		"telephone": {"6085551023"},
	}

	w := postForm(r, "/owners/1/edit", form)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/owners/1", w.Header().Get("Location"))
	assert.Contains(t, get(r, "/owners/1").Body.String(), "1 Main St")

	t.Run("identity_mismatch", func(t *testing.T) {
		form.Set("id", "2")
		form.Set("address", "elsewhere")
		w := postForm(r, "/owners/1/edit", form)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/owners/1/edit", w.Header().Get("Location"))
		c := flashCookie(w)
		require.NotNil(t, c)
		v, err := url.QueryUnescape(c.Value)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(v, "error|"), v)
		assert.NotContains(t, get(r, "/owners/1").Body.String(), "elsewhere")
	})

	t.Run("unknown", func(t *testing.T) {
		form.Set("id", "")
		assert.Equal(t, http.StatusNotFound, postForm(r, "/owners/999/edit", form).Code)
	})
}

func TestPetForms(t *testing.T) {
	r := newEngine(t, stubPinger{})

	t.Run("new_form_lists_types", func(t *testing.T) {
		w := get(r, "/owners/1/pets/new")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "hamster")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		w := postForm(r, "/owners/1/pets/new", url.Values{"name": {"leo"}, "birthDate": {"2020-01-01"}, "type": {"1"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})

	t.Run("bad_date", func(t *testing.T) {
		w := postForm(r, "/owners/1/pets/new", url.Values{"name": {"Milo"}, "birthDate": {"01/02/2020"}, "type": {"1"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "invalid date")
	})

	t.Run("created", func(t *testing.T) {
		w := postForm(r, "/owners/1/pets/new", url.Values{"name": {"Milo"}, "birthDate": {"2020-01-02"}, "type": {"2"}})
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		assert.Equal(t, "/owners/1", w.Header().Get("Location"))
		assert.Contains(t, get(r, "/owners/1").Body.String(), "Milo")
	})

	t.Run("edit_other_owners_pet", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(r, "/owners/2/pets/1/edit").Code)
	})

	t.Run("edit", func(t *testing.T) {
		w := get(r, "/owners/1/pets/1/edit")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="2010-09-07"`)

		w = postForm(r, "/owners/1/pets/1/edit", url.Values{"id": {"1"}, "name": {"Leonardo"}, "birthDate": {"2010-09-07"}, "type": {"1"}})
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		assert.Contains(t, get(r, "/owners/1").Body.String(), "Leonardo")
	})
}

func TestVisitForm(t *testing.T) {
	r := newEngine(t, stubPinger{})

	w := postForm(r, "/owners/1/pets/1/visits/new", url.Values{"date": {"2030-05-01"}, "description": {"  "}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "must not be blank")

	w = postForm(r, "/owners/1/pets/1/visits/new", url.Values{"date": {"2030-05-01"}, "description": {"limping"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	body := get(r, "/owners/1").Body.String()
	assert.Contains(t, body, "2030-05-01")
	assert.Contains(t, body, "limping")

	assert.Equal(t, http.StatusNotFound, get(r, "/owners/2/pets/1/visits/new").Code)
}

func TestUpcomingVisits(t *testing.T) {
	r := newEngine(t, stubPinger{})

	var up struct {
		Days   int `json:"days"`
		Visits []struct {
			Pet struct {
				Name string `json:"name"`
			} `json:"pet"`
		} `json:"visits"`
	}
	w := getJSON(t, r, "/visits/upcoming", &up)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.DefaultUpcomingDays, up.Days)
	var names []string
	for _, v := range up.Visits {
		names = append(names, v.Pet.Name)
	}
	assert.Equal(t, []string{"Leo", "Rosy", "Iggy"}, names)

	w = get(r, "/visits/upcoming?days=10")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lucky")

	assert.Equal(t, http.StatusBadRequest, get(r, "/visits/upcoming?days=soon").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/visits/upcoming?days=-1").Code)
}

func TestVets(t *testing.T) {
	r := newEngine(t, stubPinger{})

	t.Run("json_list", func(t *testing.T) {
		var out struct {
			VetList []struct {
				LastName string `json:"lastName"`
			} `json:"vetList"`
		}
		w := getJSON(t, r, "/vets", &out)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, out.VetList, 6)
		assert.Equal(t, "Carter", out.VetList[0].LastName)
		assert.Contains(t, w.Body.String(), `"firstName":"James"`)
		assert.NotContains(t, w.Body.String(), "first_name")
	})

	type bag struct {
		Specialties       []string `json:"specialties"`
		SelectedSpecialty string   `json:"selectedSpecialty"`
		CurrentPage       int      `json:"currentPage"`
		TotalPages        int      `json:"totalPages"`
		TotalItems        int      `json:"totalItems"`
		ListVets          []struct {
			LastName string `json:"lastName"`
		} `json:"listVets"`
	}

	t.Run("page_two", func(t *testing.T) {
		var b bag
		w := getJSON(t, r, "/vets.html?page=2", &b)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 6, b.TotalItems)
		assert.Equal(t, 2, b.TotalPages)
		require.Len(t, b.ListVets, 1)
		assert.Equal(t, "Jenkins", b.ListVets[0].LastName)
		assert.Equal(t, []string{"dentistry", "radiology", "surgery"}, b.Specialties)
	})

	t.Run("none", func(t *testing.T) {
		var b bag
		w := getJSON(t, r, "/vets.html?specialty=none", &b)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, b.TotalItems)
		assert.Equal(t, "none", b.SelectedSpecialty)
	})

	t.Run("html", func(t *testing.T) {
		w := get(r, "/vets.html?specialty=radiology")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Helen Leary")
		assert.Contains(t, body, "Henry Stevens")
		assert.NotContains(t, body, "James Carter")
	})

	t.Run("huge_page_is_empty", func(t *testing.T) {
		var b bag
		w := getJSON(t, r, "/vets.html?page=1844674407370955163", &b)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, b.ListVets)
		assert.Equal(t, 6, b.TotalItems)
		assert.Equal(t, 2, b.TotalPages)
	})

	t.Run("bad_page", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(r, "/vets.html?page=0").Code)
	})
}

func TestAPI(t *testing.T) {
	r := newEngine(t, stubPinger{})

	t.Run("get_owner", func(t *testing.T) {
		var o struct {
			FirstName string `json:"firstName"`
			Pets      []struct {
				Name string `json:"name"`
			} `json:"pets"`
		}
		w := getJSON(t, r, "/api/v1/owners/1", &o)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "George", o.FirstName)
		require.Len(t, o.Pets, 1)
		assert.Equal(t, "Leo", o.Pets[0].Name)
	})

	t.Run("list_owners", func(t *testing.T) {
		var page struct {
			Total int `json:"total"`
		}
		w := getJSON(t, r, "/api/v1/owners?lastName=Franklin&telephone=6085551023&city=Madison", &page)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("create_invalid", func(t *testing.T) {
		w := sendJSON(r, http.MethodPost, "/api/v1/owners", `{"firstName":"Ada"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_input")
		assert.Contains(t, w.Body.String(), "telephone")
	})

	t.Run("create", func(t *testing.T) {
		w := sendJSON(r, http.MethodPost, "/api/v1/owners",
			`{"firstName":"Ada","lastName":"Lovelace","address":"x","city":"London","telephone":"0123456789"}`)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "/api/v1/owners/11", w.Header().Get("Location"))
	})

	t.Run("update_mismatch", func(t *testing.T) {
		w := sendJSON(r, http.MethodPut, "/api/v1/owners/1",
			`{"id":2,"firstName":"George","lastName":"Franklin","address":"x","city":"Madison","telephone":"6085551023"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "identity_mismatch")
	})

	t.Run("pet_types", func(t *testing.T) {
		var types []struct {
			Name string `json:"name"`
		}
		w := getJSON(t, r, "/api/v1/pettypes", &types)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, types, 6)
		assert.Equal(t, "bird", types[0].Name)
	})

	t.Run("create_pet_bad_date", func(t *testing.T) {
		w := sendJSON(r, http.MethodPost, "/api/v1/owners/1/pets", `{"name":"Milo","birthDate":"soon","type":"1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "birthDate")
	})

	t.Run("book_visit", func(t *testing.T) {
		w := sendJSON(r, http.MethodPost, "/api/v1/owners/3/pets/3/visits", `{"description":"follow-up"}`)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("vet_directory", func(t *testing.T) {
		var b struct {
			TotalItems int `json:"totalItems"`
		}
		w := getJSON(t, r, "/api/v1/vets?specialty=radiology", &b)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, b.TotalItems)
	})
}

func TestSwaggerDoc(t *testing.T) {
	r := newEngine(t, stubPinger{})
	w := get(r, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Petclinic API")
	assert.Contains(t, w.Body.String(), "/visits/upcoming")

	w = get(r, "/docs")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
}
