package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spa-booking-server/internal/booking"
	"spa-booking-server/internal/models"
	"spa-booking-server/internal/scheduling"
	"spa-booking-server/internal/store"
	"spa-booking-server/internal/utils"
)

const testClientID = "7b1e9c0a-9a43-4a6e-9a41-0f6f2f1b2c3d"

type memoryStore struct {
	appointments []models.Appointment
	clients      map[string]models.Client
	listErr      error
}

func (m *memoryStore) ListAppointments(ctx context.Context, filter store.AppointmentFilter) ([]models.Appointment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Appointment
	for _, appt := range m.appointments {
		if filter.ClientID != "" && appt.ClientID != filter.ClientID {
			continue
		}
		if filter.PaymentStatus != "" && appt.Payment != filter.PaymentStatus {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (m *memoryStore) ListOnDate(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Appointment
	for _, appt := range m.appointments {
		if appt.Status == models.StatusCancelled {
			continue
		}
		y1, m1, d1 := appt.StartTime.Date()
		y2, m2, d2 := date.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (m *memoryStore) ListForClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range m.appointments {
		if appt.ClientID == clientID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (m *memoryStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	appt.ID = "new-appointment"
	m.appointments = append(m.appointments, *appt)
	return nil
}

func (m *memoryStore) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Appointment, error) {
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments[i].Payment = status
			return &m.appointments[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryStore) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments[i].Status = models.StatusCancelled
			return &m.appointments[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryStore) ListClients(ctx context.Context, search string) ([]models.Client, error) {
	var out []models.Client
	for _, client := range m.clients {
		if search == "" || strings.Contains(client.Name, search) {
			out = append(out, client)
		}
	}
	return out, nil
}

func (m *memoryStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	if client, ok := m.clients[id]; ok {
		return &client, nil
	}
	return nil, store.ErrNotFound
}

func (m *memoryStore) CreateClient(ctx context.Context, client *models.Client) error {
	for _, existing := range m.clients {
		if existing.Email == client.Email {
			return store.ErrDuplicateEmail
		}
	}
	client.ID = "new-client"
	m.clients[client.ID] = *client
	return nil
}

func (m *memoryStore) UpdateClientConcern(ctx context.Context, id, areasOfConcern string) (*models.Client, error) {
	client, ok := m.clients[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	client.AreasOfConcern = areasOfConcern
	m.clients[id] = client
	return &client, nil
}

func newTestRouter(t *testing.T, mem *memoryStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	calendar, err := scheduling.NewCalendar([]string{"08:00", "10:00", "12:00"})
	require.NoError(t, err)
	catalog := models.Catalog{
		Treatments: []string{"Facial", "Swedish Massage"},
		Durations:  []int{30, 60},
	}
	bookingService := booking.NewService(mem, mem, calendar, catalog, zap.NewNop())

	clientHandler := NewClientHandler(mem)
	appointmentHandler := NewAppointmentHandler(bookingService, mem)
	catalogHandler := NewCatalogHandler(catalog)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/clients", clientHandler.ListClients)
	api.POST("/clients", clientHandler.CreateClient)
	api.PATCH("/clients/:id/concerns", clientHandler.UpdateClientConcern)
	api.POST("/appointments", appointmentHandler.CreateAppointment)
	api.GET("/appointments", appointmentHandler.ListAppointments)
	api.GET("/appointments/slots", appointmentHandler.GetAvailableSlots)
	api.GET("/appointments/client/:clientId", appointmentHandler.GetClientHistory)
	api.PUT("/appointments/:id/payment", appointmentHandler.UpdatePaymentStatus)
	api.PATCH("/appointments/:id/cancel", appointmentHandler.CancelAppointment)
	api.GET("/treatments", catalogHandler.GetCatalog)
	return router
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clients: map[string]models.Client{
			testClientID: {
				BaseModel: models.BaseModel{ID: testClientID},
				Name:      "Ada Lovelace",
				Email:     "ada@example.com",
				Phone:     "555-0100",
			},
		},
	}
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	t.Run("books a free slot", func(t *testing.T) {
		mem := newMemoryStore()
		router := newTestRouter(t, mem)

		body := `{"clientId":"` + testClientID + `","treatment":"Facial","duration":60,"startTime":"2025-03-14T10:00:00Z"}`
		rec := doRequest(router, http.MethodPost, "/api/v1/appointments", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, mem.appointments, 1)
	})

	t.Run("conflicting slot returns 409", func(t *testing.T) {
		mem := newMemoryStore()
		mem.appointments = []models.Appointment{{
			BaseModel: models.BaseModel{ID: "existing"},
			ClientID:  testClientID,
			StartTime: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
			Duration:  60,
			Status:    models.StatusActive,
		}}
		router := newTestRouter(t, mem)

		body := `{"clientId":"` + testClientID + `","treatment":"Facial","duration":60,"startTime":"2025-03-14T10:30:00Z"}`
		rec := doRequest(router, http.MethodPost, "/api/v1/appointments", body)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Len(t, mem.appointments, 1)
	})

	t.Run("unknown client returns 404", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())

		body := `{"clientId":"00000000-0000-4000-8000-000000000000","treatment":"Facial","duration":60,"startTime":"2025-03-14T10:00:00Z"}`
		rec := doRequest(router, http.MethodPost, "/api/v1/appointments", body)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())

		rec := doRequest(router, http.MethodPost, "/api/v1/appointments", `{"treatment":"Facial"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("treatment outside catalog returns 400", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())

		body := `{"clientId":"` + testClientID + `","treatment":"Crystal Healing","duration":60,"startTime":"2025-03-14T10:00:00Z"}`
		rec := doRequest(router, http.MethodPost, "/api/v1/appointments", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	t.Run("returns open slots for the day", func(t *testing.T) {
		mem := newMemoryStore()
		mem.appointments = []models.Appointment{{
			BaseModel: models.BaseModel{ID: "existing"},
			ClientID:  testClientID,
			StartTime: time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local),
			Duration:  60,
			Status:    models.StatusActive,
		}}
		router := newTestRouter(t, mem)

		rec := doRequest(router, http.MethodGet, "/api/v1/appointments/slots?date=2025-03-14", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp utils.ResponseData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		slots, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, slots, 2)
	})

	t.Run("missing date returns 400", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())
		rec := doRequest(router, http.MethodGet, "/api/v1/appointments/slots", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())
		rec := doRequest(router, http.MethodGet, "/api/v1/appointments/slots?date=tomorrow", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListAppointmentsEndpoint(t *testing.T) {
	t.Run("invalid payment status filter returns 400", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())
		rec := doRequest(router, http.MethodGet, "/api/v1/appointments?paymentStatus=Overdue", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filters by payment status", func(t *testing.T) {
		mem := newMemoryStore()
		mem.appointments = []models.Appointment{
			{BaseModel: models.BaseModel{ID: "a"}, ClientID: testClientID, Payment: models.PaymentPaid},
			{BaseModel: models.BaseModel{ID: "b"}, ClientID: testClientID, Payment: models.PaymentUnpaid},
		}
		router := newTestRouter(t, mem)

		rec := doRequest(router, http.MethodGet, "/api/v1/appointments?paymentStatus=Paid", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp utils.ResponseData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		items, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
	})
}

func TestPaymentStatusEndpoint(t *testing.T) {
	t.Run("updates and is idempotent", func(t *testing.T) {
		mem := newMemoryStore()
		mem.appointments = []models.Appointment{{
			BaseModel: models.BaseModel{ID: "appt-1"},
			ClientID:  testClientID,
			Payment:   models.PaymentUnpaid,
		}}
		router := newTestRouter(t, mem)

		body := `{"paymentStatus":"Paid"}`
		rec := doRequest(router, http.MethodPut, "/api/v1/appointments/appt-1/payment", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, models.PaymentPaid, mem.appointments[0].Payment)

		rec = doRequest(router, http.MethodPut, "/api/v1/appointments/appt-1/payment", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, models.PaymentPaid, mem.appointments[0].Payment)
	})

	t.Run("unknown appointment returns 404", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())
		rec := doRequest(router, http.MethodPut, "/api/v1/appointments/ghost/payment", `{"paymentStatus":"Paid"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown status returns 400", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())
		rec := doRequest(router, http.MethodPut, "/api/v1/appointments/appt-1/payment", `{"paymentStatus":"Overdue"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClientEndpoints(t *testing.T) {
	t.Run("creates a client", func(t *testing.T) {
		mem := newMemoryStore()
		router := newTestRouter(t, mem)

		body := `{"name":"Grace Hopper","email":"grace@example.com","phone":"555-0101","areasOfConcern":"shoulder tension"}`
		rec := doRequest(router, http.MethodPost, "/api/v1/clients", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate email returns 400", func(t *testing.T) {
		router := newTestRouter(t, newMemoryStore())

		body := `{"name":"Ada Again","email":"ada@example.com","phone":"555-0102"}`
		rec := doRequest(router, http.MethodPost, "/api/v1/clients", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Email already exists")
	})

	t.Run("updates areas of concern", func(t *testing.T) {
		mem := newMemoryStore()
		router := newTestRouter(t, mem)

		body := `{"areasOfConcern":"lower back"}`
		rec := doRequest(router, http.MethodPatch, "/api/v1/clients/"+testClientID+"/concerns", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "lower back", mem.clients[testClientID].AreasOfConcern)
	})

	t.Run("history includes cancelled appointments", func(t *testing.T) {
		mem := newMemoryStore()
		mem.appointments = []models.Appointment{
			{BaseModel: models.BaseModel{ID: "a"}, ClientID: testClientID, Status: models.StatusActive},
			{BaseModel: models.BaseModel{ID: "b"}, ClientID: testClientID, Status: models.StatusCancelled},
		}
		router := newTestRouter(t, mem)

		rec := doRequest(router, http.MethodGet, "/api/v1/appointments/client/"+testClientID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp utils.ResponseData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		items, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, items, 2)
	})
}

func TestCatalogEndpoint(t *testing.T) {
	router := newTestRouter(t, newMemoryStore())
	rec := doRequest(router, http.MethodGet, "/api/v1/treatments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Facial")
}
