package home

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/domaintest"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

func TestShowHomePage(t *testing.T) {
	backend := domaintest.NewBackend(t)
	r := domaintest.NewRouter(t, backend)
	r.GET("/", NewHomeHandlers(domain.NewBaseHandler(nil, false)).ShowHomePage)

	w := domaintest.Get(r, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	doc := domaintest.Doc(t, w)
	assert.Equal(t, 1, doc.Find("#landing a[href='/login']").Length())

	cookies := domaintest.LoginAs(t, r, "lee", models.RoleLecturer)
	doc = domaintest.Doc(t, domaintest.Get(r, "/", cookies))
	assert.Equal(t, 1, doc.Find("#welcome a[href='/lecturer']").Length())
	assert.Equal(t, "Welcome back, Lee", doc.Find("#welcome h1").Text())
	assert.Empty(t, backend.Calls())
}
