/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package verifiedid

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestStore(t *testing.T, ttl time.Duration) (*storage.InMemorySessionDatabase, storage.SessionStore) {
	db := storage.NewTestInMemorySessionDatabase(t)
	return db, db.GetStore(ttl, "verifiedid", "requests")
}

func TestInitiator_Initiate(t *testing.T) {
	ctx := context.Background()

	t.Run("presentation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := NewMockClient(ctrl)
		db, store := newTestStore(t, time.Minute)
		initiator := NewInitiator(client, store, time.Minute, nil)
		var sentState string
		client.EXPECT().CreatePresentationRequest(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, request PresentationRequest) (RequestResponse, error) {
			sentState = request.Callback.State
			return RequestResponse{"requestId": "req-1", "url": "openid-vc://", "expiry": json.Number("1633017751")}, nil
		})
		request := BuildPresentationRequest(testSettings(), "https://example.com/callback", PresentationOptions{})

		response, err := initiator.Initiate(ctx, &request)

		require.NoError(t, err)
		require.NotEmpty(t, sentState)
		assert.Equal(t, sentState, response["id"])
		assert.Equal(t, "req-1", response["requestId"])
		assert.Equal(t, 1, db.Len())
		var record StateRecord
		require.NoError(t, store.Get(sentState, &record))
		assert.Equal(t, StateRecord{Status: StatusRequestCreated, Message: "Waiting for QR code to be scanned", Expiry: "1633017751"}, record)
	})
	t.Run("issuance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := NewMockClient(ctrl)
		_, store := newTestStore(t, time.Minute)
		initiator := NewInitiator(client, store, time.Minute, NewMetrics())
		client.EXPECT().CreateIssuanceRequest(ctx, gomock.Any()).Return(RequestResponse{"expiry": json.Number("1")}, nil)
		request, _ := BuildIssuanceRequest(testSettings(), "https://example.com/callback", nil)

		response, err := initiator.Initiate(ctx, &request)

		require.NoError(t, err)
		assert.Equal(t, request.Callback.State, response["id"])
		assert.True(t, store.Exists(request.Callback.State))
	})
	t.Run("tokens are unique", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := NewMockClient(ctrl)
		db, store := newTestStore(t, time.Minute)
		initiator := NewInitiator(client, store, time.Minute, nil)
		client.EXPECT().CreatePresentationRequest(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, _ PresentationRequest) (RequestResponse, error) {
			return RequestResponse{}, nil
		}).Times(10)

		for i := 0; i < 10; i++ {
			request := PresentationRequest{}
			_, err := initiator.Initiate(ctx, &request)
			require.NoError(t, err)
		}

		assert.Equal(t, 10, db.Len())
	})
	t.Run("API failure stores nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := NewMockClient(ctrl)
		db, store := newTestStore(t, time.Minute)
		initiator := NewInitiator(client, store, time.Minute, NewMetrics())
		apiErr := APIError{HttpError: core.HttpError{StatusCode: 400, ResponseBody: []byte("bad request")}}
		client.EXPECT().CreatePresentationRequest(ctx, gomock.Any()).Return(nil, apiErr)
		request := PresentationRequest{}

		response, err := initiator.Initiate(ctx, &request)

		assert.Nil(t, response)
		assert.ErrorIs(t, err, ErrExternalAPI)
		assert.Equal(t, 0, db.Len())
	})
	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := NewMockClient(ctrl)
		store := storage.NewMockSessionStore(ctrl)
		initiator := NewInitiator(client, store, time.Minute, nil)
		client.EXPECT().CreatePresentationRequest(ctx, gomock.Any()).Return(RequestResponse{}, nil)
		store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
		request := PresentationRequest{}

		_, err := initiator.Initiate(ctx, &request)

		assert.ErrorContains(t, err, "disk full")
	})
}

func TestInitiator_InitiateSelfie(t *testing.T) {
	_, store := newTestStore(t, time.Minute)
	initiator := NewInitiator(nil, store, 5*time.Minute, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	initiator.now = func() time.Time {
		return now
	}

	response, err := initiator.InitiateSelfie(context.Background(), "https://broker.example.com")

	require.NoError(t, err)
	require.NotEmpty(t, response.ID)
	assert.Equal(t, now.Add(5*time.Minute).Unix(), response.Expiry)
	assert.Empty(t, response.Photo)
	require.True(t, strings.HasPrefix(response.URL, "https://broker.example.com/selfie.html?callbackUrl="))
	parsed, err := url.Parse(response.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://broker.example.com/api/issuer/selfie/"+response.ID, parsed.Query().Get("callbackUrl"))
	var record StateRecord
	require.NoError(t, store.Get(response.ID, &record))
	assert.Equal(t, StatusRequestCreated, record.Status)
}
