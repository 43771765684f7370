package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/opjlab/opj-backend/internal/service"
	"github.com/stretchr/testify/assert"
)

func trainingErrorStatus(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h := &TrainingHandler{}
	h.failTrainingError(c, err)
	return w.Code
}

func TestFailTrainingErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid mode", service.ErrInvalidTrainingMode, http.StatusBadRequest},
		{"not published", service.ErrDocumentNotPublished, http.StatusForbidden},
		{"block outside document", service.ErrBlockNotInDocument, http.StatusNotFound},
		{"missing document", pgx.ErrNoRows, http.StatusNotFound},
		{"missing block, wrapped", fmt.Errorf("get block: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, trainingErrorStatus(t, tc.err))
		})
	}
}
