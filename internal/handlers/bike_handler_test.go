package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/feijonts/aps-5-api/internal/handlers"
	"github.com/feijonts/aps-5-api/internal/models"
	"github.com/feijonts/aps-5-api/internal/repository"
	"github.com/feijonts/aps-5-api/internal/utils"
)

func newBikeRouter(mt *mtest.T) *mux.Router {
	handler := handlers.NewBikeHandler(
		repository.NewBikeRepository(mt.Coll),
		utils.Logger{Collection: mt.Coll},
	)

	router := mux.NewRouter()
	router.HandleFunc("/bikes", handler.ListBikes).Methods("GET")
	router.HandleFunc("/bikes", handler.CreateBike).Methods("POST")
	router.HandleFunc("/bikes/{id}", handler.GetBike).Methods("GET")
	router.HandleFunc("/bikes/{id}", handler.UpdateBike).Methods("PUT")
	router.HandleFunc("/bikes/{id}", handler.DeleteBike).Methods("DELETE")
	return router
}

func TestBikeHandler_CreateBike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing brand", func(mt *mtest.T) {
		router := newBikeRouter(mt)

		body := []byte(`{"model":"X","city":"SP"}`)
		req := httptest.NewRequest(http.MethodPost, "/bikes", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, decodeMessage(mt, w.Body), "brand is required")
	})

	mt.Run("defaults to available", func(mt *mtest.T) {
		router := newBikeRouter(mt)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(), // bike insert
			mtest.CreateSuccessResponse(), // audit log insert
		)

		body := []byte(`{"brand":"Caloi","model":"X","city":"SP"}`)
		req := httptest.NewRequest(http.MethodPost, "/bikes", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(mt, http.StatusCreated, w.Code)

		var created models.Bike
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(mt, models.StatusAvailable, created.Status)
		assert.Nil(mt, created.Loan)
	})
}

func TestBikeHandler_UpdateBike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown field names the offender", func(mt *mtest.T) {
		router := newBikeRouter(mt)

		body := []byte(`{"color":"red"}`)
		req := httptest.NewRequest(http.MethodPut, "/bikes/"+primitive.NewObjectID().Hex(), bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, decodeMessage(mt, w.Body), `field "color" does not exist`)
	})
}

func TestBikeHandler_DeleteBike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("malformed id", func(mt *mtest.T) {
		router := newBikeRouter(mt)

		req := httptest.NewRequest(http.MethodDelete, "/bikes/zzz", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
	})
}
