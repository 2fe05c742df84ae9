package handlers

import (
	"net/http"
	"testing"

	"launchsite-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dealRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	h := NewDealHandler(db)

	router := gin.New()
	router.GET("/deals", h.List)
	router.POST("/deals", h.Create)
	router.PUT("/deals/:id", h.Update)
	router.PUT("/deals/:id/status", h.UpdateStatus)
	router.DELETE("/deals/:id", h.Delete)
	return router, db
}

func validDealBody() gin.H {
	return gin.H{
		"client_name":  "דן כהן",
		"phone":        "0501234567",
		"email":        "Dan@Example.com",
		"source":       "פייסבוק",
		"package_type": "פרימיום",
		"status":       "פתוחה",
	}
}

func TestCreateDeal(t *testing.T) {
	router, db := dealRouter(t)

	body := validDealBody()
	body["amount_paid"] = "1990.5"
	body["payment_method"] = "ביט"
	body["closing_date"] = "2026-09-01"
	body["notes"] = "סגירה צפויה בספטמבר"

	w := doJSON(t, router, http.MethodPost, "/deals", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var deal models.Deal
	require.NoError(t, db.First(&deal).Error)
	assert.NotEmpty(t, deal.ID)
	assert.Equal(t, "dan@example.com", deal.Email, "email must be lowercased")
	require.NotNil(t, deal.AmountPaid)
	assert.Equal(t, 1990.5, *deal.AmountPaid)
	require.NotNil(t, deal.ClosingDate)
	assert.Equal(t, "2026-09-01", deal.ClosingDate.Format("2006-01-02"))
}

func TestCreateDealEmptyAmountStoresNull(t *testing.T) {
	router, db := dealRouter(t)

	body := validDealBody()
	body["amount_paid"] = ""

	w := doJSON(t, router, http.MethodPost, "/deals", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var deal models.Deal
	require.NoError(t, db.First(&deal).Error)
	assert.Nil(t, deal.AmountPaid, "empty amount must store NULL, not zero")
	assert.Nil(t, deal.PaymentMethod)
	assert.Nil(t, deal.ClosingDate)
	assert.Nil(t, deal.Notes)
}

func TestCreateDealValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(gin.H)
		message string
	}{
		{"missing client name", func(b gin.H) { b["client_name"] = " " }, "שם הלקוח הוא שדה חובה"},
		{"missing phone", func(b gin.H) { b["phone"] = "" }, "טלפון הוא שדה חובה"},
		{"missing email", func(b gin.H) { b["email"] = "" }, "אימייל הוא שדה חובה"},
		{"missing source", func(b gin.H) { b["source"] = "" }, "מקור הגעה הוא שדה חובה"},
		{"missing package", func(b gin.H) { b["package_type"] = "" }, "חבילה היא שדה חובה"},
		{"missing status", func(b gin.H) { b["status"] = "" }, "סטטוס הוא שדה חובה"},
		{"bad email", func(b gin.H) { b["email"] = "not-an-email" }, "כתובת אימייל לא תקינה"},
		{"bad phone", func(b gin.H) { b["phone"] = "123" }, "מספר טלפון לא תקין"},
		{"bad source", func(b gin.H) { b["source"] = "Facebook" }, "מקור הגעה לא תקין"},
		{"bad package", func(b gin.H) { b["package_type"] = "premium" }, "חבילה לא תקינה"},
		{"bad status", func(b gin.H) { b["status"] = "open" }, "סטטוס לא תקין"},
		{"bad amount", func(b gin.H) { b["amount_paid"] = "לא מספר" }, "סכום ששולם לא תקין"},
		{"negative amount", func(b gin.H) { b["amount_paid"] = "-50" }, "סכום ששולם לא תקין"},
		{"bad payment method", func(b gin.H) { b["payment_method"] = "צ'ק" }, "אמצעי תשלום לא תקין"},
		{"bad closing date", func(b gin.H) { b["closing_date"] = "01/09/2026" }, "תאריך סגירה לא תקין"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, db := dealRouter(t)

			body := validDealBody()
			tt.mutate(body)

			w := doJSON(t, router, http.MethodPost, "/deals", body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Error string `json:"error"`
			}
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.message, resp.Error)

			var count int64
			db.Model(&models.Deal{}).Count(&count)
			assert.Zero(t, count)
		})
	}
}

func TestListDealsWithSummary(t *testing.T) {
	router, db := dealRouter(t)

	amount := 3000.0
	require.NoError(t, db.Create(&models.Deal{
		ClientName: "א", Phone: "0501111111", Email: "a@b.co",
		Source: "אתר", PackageType: "בסיסית",
		Status: models.DealStatusCompleted, AmountPaid: &amount,
	}).Error)
	require.NoError(t, db.Create(&models.Deal{
		ClientName: "ב", Phone: "0502222222", Email: "b@b.co",
		Source: "המלצה", PackageType: "פרימיום",
		Status: models.DealStatusOpen,
	}).Error)

	w := doJSON(t, router, http.MethodGet, "/deals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DealListResponse
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Deals, 2)
	assert.Equal(t, 3000.0, resp.Summary.TotalRevenue)
	assert.Equal(t, 1, resp.Summary.Completed)
	assert.Equal(t, 1, resp.Summary.Open)
}

func TestUpdateDeal(t *testing.T) {
	router, db := dealRouter(t)

	deal := models.Deal{
		ClientName: "דן", Phone: "0501234567", Email: "dan@example.com",
		Source: "אתר", PackageType: "בסיסית", Status: models.DealStatusOpen,
	}
	require.NoError(t, db.Create(&deal).Error)

	body := validDealBody()
	body["status"] = models.DealStatusCompleted
	body["amount_paid"] = "1190"

	w := doJSON(t, router, http.MethodPut, "/deals/"+deal.ID, body)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Deal
	require.NoError(t, db.First(&updated, "id = ?", deal.ID).Error)
	assert.Equal(t, models.DealStatusCompleted, updated.Status)
	assert.Equal(t, "פרימיום", updated.PackageType)
	require.NotNil(t, updated.AmountPaid)
	assert.Equal(t, 1190.0, *updated.AmountPaid)
}

func TestUpdateDealNotFound(t *testing.T) {
	router, _ := dealRouter(t)

	w := doJSON(t, router, http.MethodPut, "/deals/no-such-id", validDealBody())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateDealStatus(t *testing.T) {
	router, db := dealRouter(t)

	deal := models.Deal{
		ClientName: "דן", Phone: "0501234567", Email: "dan@example.com",
		Source: "אתר", PackageType: "בסיסית", Status: models.DealStatusOpen,
	}
	require.NoError(t, db.Create(&deal).Error)

	w := doJSON(t, router, http.MethodPut, "/deals/"+deal.ID+"/status",
		gin.H{"status": models.DealStatusNotClosed})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Deal
	require.NoError(t, db.First(&updated, "id = ?", deal.ID).Error)
	assert.Equal(t, models.DealStatusNotClosed, updated.Status)

	w = doJSON(t, router, http.MethodPut, "/deals/"+deal.ID+"/status", gin.H{"status": "closed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteDeal(t *testing.T) {
	router, db := dealRouter(t)

	deal := models.Deal{
		ClientName: "דן", Phone: "0501234567", Email: "dan@example.com",
		Source: "אתר", PackageType: "בסיסית", Status: models.DealStatusOpen,
	}
	require.NoError(t, db.Create(&deal).Error)

	w := doJSON(t, router, http.MethodDelete, "/deals/"+deal.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Deal{}).Count(&count)
	assert.Zero(t, count)

	w = doJSON(t, router, http.MethodDelete, "/deals/"+deal.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
