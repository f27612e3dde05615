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

package core

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldStore is the log field key for the name of a store managed by the storage module.
	LogFieldStore = "store"

	// LogFieldState is the log field key for the correlation token (state) of a Verified ID request.
	LogFieldState = "state"
	// LogFieldRequestStatus is the log field key for the request status reported by a callback.
	LogFieldRequestStatus = "requestStatus"
	// LogFieldFlowKind is the log field key for the kind of flow (presentation, issuance, selfie).
	LogFieldFlowKind = "flowKind"
	// LogFieldCredentialType is the log field key for the type of a Verifiable Credential.
	LogFieldCredentialType = "credentialType"
)
