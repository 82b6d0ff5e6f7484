package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContributorFixture(t *testing.T, email string) (*echo.Echo, *MockContributorStore) {
	t.Helper()

	e := newTestEcho()
	store := new(MockContributorStore)
	policy := services.NewLessonPolicy(func(email string) bool { return email == "admin@lessons.app" })
	cc := NewContributorController(store, policy, nopLogger(), time.Second)
	cc.now = func() time.Time { return fixedNow }

	e.GET("/contributors", cc.GetContributors)
	e.POST("/contributors", cc.CreateContributor, asUser(email))

	t.Cleanup(func() { store.AssertExpectations(t) })
	return e, store
}

func TestGetContributors(t *testing.T) {
	e, store := newContributorFixture(t, "")
	store.On("List", mock.Anything).Return([]models.Contributor{
		{Name: "Maya", Lessons: 3},
		{Name: "Anonymous", Lessons: 1},
	}, nil).Once()

	rec, env := doRequest(t, e, http.MethodGet, "/contributors", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []models.Contributor
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Maya", got[0].Name)
}

func TestCreateContributor(t *testing.T) {
	t.Run("admin upserts with defaults", func(t *testing.T) {
		e, store := newContributorFixture(t, "admin@lessons.app")
		store.On("Upsert", mock.Anything, models.DefaultAuthor, models.DefaultAuthorAvatar, fixedNow).
			Return(&models.Contributor{Name: models.DefaultAuthor, Avatar: models.DefaultAuthorAvatar}, nil).Once()

		rec, _ := doRequest(t, e, http.MethodPost, "/contributors", `{}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("admin name is normalised", func(t *testing.T) {
		e, store := newContributorFixture(t, "admin@lessons.app")
		store.On("Upsert", mock.Anything, "Maya Haddad", "/maya.png", fixedNow).
			Return(&models.Contributor{Name: "Maya Haddad"}, nil).Once()

		rec, _ := doRequest(t, e, http.MethodPost, "/contributors", `{"name":"  Maya   Haddad ","avatar":"/maya.png"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		e, store := newContributorFixture(t, "writer@lessons.app")

		rec, _ := doRequest(t, e, http.MethodPost, "/contributors", `{"name":"Maya"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
