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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowKind_Allows(t *testing.T) {
	testCases := []struct {
		kind    FlowKind
		status  RequestStatus
		allowed bool
	}{
		{PresentationFlow, StatusRequestRetrieved, true},
		{PresentationFlow, StatusPresentationVerified, true},
		{PresentationFlow, StatusPresentationError, true},
		{PresentationFlow, StatusIssuanceSuccessful, false},
		{PresentationFlow, StatusRequestCreated, false},
		{PresentationFlow, StatusSelfieTaken, false},
		{IssuanceFlow, StatusRequestRetrieved, true},
		{IssuanceFlow, StatusIssuanceSuccessful, true},
		{IssuanceFlow, StatusIssuanceError, true},
		{IssuanceFlow, StatusPresentationVerified, false},
		{SelfieFlow, StatusSelfieTaken, true},
		{SelfieFlow, StatusRequestRetrieved, false},
		{FlowKind(0), StatusRequestRetrieved, false},
	}
	for _, tc := range testCases {
		t.Run(tc.kind.String()+"/"+string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.kind.Allows(tc.status))
		})
	}
}

func TestFlowKind_AllowedStatuses(t *testing.T) {
	assert.Equal(t, []RequestStatus{StatusSelfieTaken}, SelfieFlow.AllowedStatuses())
	assert.Len(t, PresentationFlow.AllowedStatuses(), 3)
	assert.Empty(t, FlowKind(99).AllowedStatuses())
}

func TestFlowKind_RequiresAPIKey(t *testing.T) {
	assert.True(t, PresentationFlow.RequiresAPIKey())
	assert.True(t, IssuanceFlow.RequiresAPIKey())
	assert.False(t, SelfieFlow.RequiresAPIKey())
}

func TestRequestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusPresentationVerified.Terminal())
	assert.True(t, StatusIssuanceError.Terminal())
	assert.True(t, StatusSelfieTaken.Terminal())
	assert.False(t, StatusRequestCreated.Terminal())
	assert.False(t, StatusRequestRetrieved.Terminal())
	assert.False(t, StatusRequestNotCreated.Terminal())
}

func TestCredentialState_IsValid(t *testing.T) {
	assert.True(t, CredentialState{RevocationStatus: "VALID"}.IsValid())
	assert.False(t, CredentialState{RevocationStatus: "REVOKED"}.IsValid())
}
