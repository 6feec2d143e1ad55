package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/db"
	"github.com/agendalivre/agenda-api/internal/middleware"
	"github.com/agendalivre/agenda-api/internal/models"
	"github.com/agendalivre/agenda-api/internal/timezone"
)

const testTZ = timezone.DefaultTimezone

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := db.Open(dsn)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func authedRequest(t *testing.T, proID uint, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set(middleware.ContextProfessionalID, proID)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func price(v float64) *float64 { return &v }

type reportsFixture struct {
	db  *gorm.DB
	pro models.Professional
	cut models.Service
	dye models.Service
}

func seedReports(t *testing.T) *reportsFixture {
	t.Helper()

	gdb := newTestDB(t)

	f := &reportsFixture{db: gdb}

	f.pro = models.Professional{Name: "Maria", Email: "maria@example.com", Phone: "11", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&f.pro).Error)

	f.cut = models.Service{ProfessionalID: f.pro.ID, Name: "Corte", DurationMinutes: 30, Price: price(100), IsActive: true}
	require.NoError(t, gdb.Create(&f.cut).Error)

	f.dye = models.Service{ProfessionalID: f.pro.ID, Name: "Coloração", DurationMinutes: 60, Price: price(50), IsActive: true}
	require.NoError(t, gdb.Create(&f.dye).Error)

	return f
}

func (f *reportsFixture) appointment(t *testing.T, svc models.Service, date time.Time, status string) {
	t.Helper()

	ap := models.Appointment{
		ProfessionalID: f.pro.ID,
		ServiceID:      svc.ID,
		ClientName:     "João",
		ClientPhone:    "11999998888",
		Date:           timezone.Midnight(date),
		Time:           "09:00",
		Status:         status,
	}
	require.NoError(t, f.db.Create(&ap).Error)
}

func TestRevenueIgnoresCancelled(t *testing.T) {
	f := seedReports(t)
	today := timezone.Midnight(timezone.NowIn(testTZ))

	f.appointment(t, f.cut, today, "completed") // 100
	f.appointment(t, f.dye, today, "cancelled") // ignored

	h := NewReportsHandler(f.db, testTZ)
	c, w := authedRequest(t, f.pro.ID, "/api/me/reports/revenue?period=month")
	h.Revenue(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	data := body["data"].([]any)
	require.Len(t, data, 1)

	bucket := data[0].(map[string]any)
	assert.Equal(t, today.Format("2006-01"), bucket["period"])
	assert.EqualValues(t, 100, bucket["revenue"])
	assert.EqualValues(t, 1, bucket["appointments"])
}

func TestRevenueCountsConfirmed(t *testing.T) {
	f := seedReports(t)
	today := timezone.Midnight(timezone.NowIn(testTZ))

	f.appointment(t, f.cut, today, "completed")
	f.appointment(t, f.dye, today, "confirmed")
	f.appointment(t, f.cut, today, "scheduled") // not yet revenue

	h := NewReportsHandler(f.db, testTZ)
	c, w := authedRequest(t, f.pro.ID, "/api/me/reports/revenue?period=month")
	h.Revenue(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.EqualValues(t, 150, data[0].(map[string]any)["revenue"])
}

func TestRevenueInvalidPeriod(t *testing.T) {
	f := seedReports(t)

	h := NewReportsHandler(f.db, testTZ)
	c, w := authedRequest(t, f.pro.ID, "/api/me/reports/revenue?period=decade")
	h.Revenue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardCounts(t *testing.T) {
	f := seedReports(t)
	today := timezone.Midnight(timezone.NowIn(testTZ))

	f.appointment(t, f.cut, today, "scheduled")
	f.appointment(t, f.cut, today, "completed")
	f.appointment(t, f.dye, today.AddDate(0, -2, 0), "completed") // out of this month

	h := NewReportsHandler(f.db, testTZ)
	c, w := authedRequest(t, f.pro.ID, "/api/me/reports/dashboard")
	h.Dashboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.EqualValues(t, 3, body["total_appointments"])
	assert.EqualValues(t, 2, body["this_month"])
	assert.EqualValues(t, 2, body["today"])
	assert.EqualValues(t, 100, body["estimated_revenue"])

	dist := body["status_distribution"].(map[string]any)
	assert.EqualValues(t, 1, dist["scheduled"])
	assert.EqualValues(t, 1, dist["completed"])

	top := body["top_services"].([]any)
	require.NotEmpty(t, top)
	assert.Equal(t, "Corte", top[0].(map[string]any)["name"])
}

// Postgres returns date columns as UTC midnights while the handler's
// reference points are midnights in the app timezone. Counting must agree
// on the calendar date regardless of the zone the driver picked.
func TestDashboardCountsDatesDecodedInUTC(t *testing.T) {
	f := seedReports(t)
	today := timezone.Midnight(timezone.NowIn(testTZ))

	utcToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	ap := models.Appointment{
		ProfessionalID: f.pro.ID,
		ServiceID:      f.cut.ID,
		ClientName:     "João",
		ClientPhone:    "11999998888",
		Date:           utcToday,
		Time:           "09:00",
		Status:         "completed",
	}
	require.NoError(t, f.db.Create(&ap).Error)

	h := NewReportsHandler(f.db, testTZ)
	c, w := authedRequest(t, f.pro.ID, "/api/me/reports/dashboard")
	h.Dashboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.EqualValues(t, 1, body["today"])
	assert.EqualValues(t, 1, body["this_week"])
	assert.EqualValues(t, 1, body["this_month"])
	assert.EqualValues(t, 100, body["estimated_revenue"])
}

func TestServicesPerformanceRates(t *testing.T) {
	f := seedReports(t)
	today := timezone.Midnight(timezone.NowIn(testTZ))

	f.appointment(t, f.cut, today, "completed")
	f.appointment(t, f.cut, today, "completed")
	f.appointment(t, f.cut, today, "cancelled")
	f.appointment(t, f.cut, today, "scheduled")

	h := NewReportsHandler(f.db, testTZ)
	c, w := authedRequest(t, f.pro.ID, "/api/me/reports/services-performance")
	h.ServicesPerformance(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	data := body["data"].([]any)
	require.Len(t, data, 2)

	cut := data[0].(map[string]any)
	assert.Equal(t, "Corte", cut["name"])
	assert.EqualValues(t, 4, cut["total_appointments"])
	assert.EqualValues(t, 2, cut["completed"])
	assert.EqualValues(t, 1, cut["cancelled"])
	assert.EqualValues(t, 50, cut["completion_rate"])
	assert.EqualValues(t, 25, cut["cancellation_rate"])
	assert.EqualValues(t, 200, cut["total_revenue"])
	assert.EqualValues(t, 50, cut["avg_revenue_per_appointment"])

	// Active service with no appointments still appears, zeroed.
	dye := data[1].(map[string]any)
	assert.Equal(t, "Coloração", dye["name"])
	assert.EqualValues(t, 0, dye["total_appointments"])
	assert.EqualValues(t, 0, dye["avg_revenue_per_appointment"])
}

func TestAppointmentsReportFilters(t *testing.T) {
	f := seedReports(t)
	today := timezone.Midnight(timezone.NowIn(testTZ))

	f.appointment(t, f.cut, today, "completed")
	f.appointment(t, f.dye, today.AddDate(0, 0, -1), "cancelled")

	h := NewReportsHandler(f.db, testTZ)
	c, w := authedRequest(t, f.pro.ID,
		"/api/me/reports/appointments?status=cancelled")
	h.Appointments(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.EqualValues(t, 1, body["total"])
	data := body["data"].([]any)
	assert.Equal(t, "Coloração", data[0].(map[string]any)["service_name"])
}
