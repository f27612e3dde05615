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

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/mdp/qrterminal/v3"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid"
	"github.com/spf13/cobra"
)

var errRequestPending = errors.New("request not completed yet")

type presentOptions struct {
	address        string
	credentialType string
	faceCheck      bool
	timeout        time.Duration
	interval       time.Duration
}

func createPresentCommand() *cobra.Command {
	options := presentOptions{}
	command := &cobra.Command{
		Use:   "present",
		Short: "Starts a presentation request on a running broker, shows its QR code and waits for the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), options.timeout)
			defer cancel()
			client := presentClient{
				baseURL: strings.TrimSuffix(options.address, "/"),
				doer:    core.NewStrictHTTPClient(false, options.interval+10*time.Second, nil),
				out:     cmd.OutOrStdout(),
			}
			return client.present(ctx, options)
		},
	}
	command.Flags().StringVar(&options.address, "address", "http://localhost:5000", "Base URL of the broker.")
	command.Flags().StringVar(&options.credentialType, "credentialtype", "", "Credential type to request. When empty, the configured type is used.")
	command.Flags().BoolVar(&options.faceCheck, "facecheck", false, "Request a face check on the presented credential.")
	command.Flags().DurationVar(&options.timeout, "timeout", 5*time.Minute, "Maximum time to wait for the presentation to complete.")
	command.Flags().DurationVar(&options.interval, "interval", 2*time.Second, "Interval between status polls.")
	return command
}

type presentClient struct {
	baseURL string
	doer    core.HTTPRequestDoer
	out     io.Writer
}

func (p presentClient) present(ctx context.Context, options presentOptions) error {
	query := url.Values{}
	if options.credentialType != "" {
		query.Set("credentialType", options.credentialType)
	}
	if options.faceCheck {
		query.Set("faceCheck", "true")
	}
	var request verifiedid.RequestResponse
	if err := p.get(ctx, "/api/verifier/presentation-request?"+query.Encode(), &request); err != nil {
		return fmt.Errorf("unable to create presentation request: %w", err)
	}
	id, _ := request["id"].(string)
	requestURL, _ := request["url"].(string)
	if id == "" || requestURL == "" {
		return errors.New("presentation request response lacks id or url")
	}
	_, _ = fmt.Fprintf(p.out, "Scan the QR code with your wallet (request %s):\n", id)
	qrterminal.GenerateWithConfig(requestURL, qrterminal.Config{
		BlackChar: qrterminal.WHITE,
		WhiteChar: qrterminal.BLACK,
		Level:     qrterminal.M,
		Writer:    p.out,
		QuietZone: 1,
	})
	_, _ = fmt.Fprintln(p.out, requestURL)

	result, err := p.poll(ctx, id, options.interval)
	if err != nil {
		return err
	}
	output, _ := json.MarshalIndent(result, "", "  ")
	_, _ = fmt.Fprintln(p.out, string(output))
	if result.Status != verifiedid.StatusPresentationVerified {
		return fmt.Errorf("presentation did not complete: %s", result.Message)
	}
	return nil
}

// poll requests the status until it is terminal. A status other than 200 OK aborts polling.
func (p presentClient) poll(ctx context.Context, id string, interval time.Duration) (verifiedid.StatusPayload, error) {
	var lastStatus verifiedid.RequestStatus
	return retry.DoWithData(func() (verifiedid.StatusPayload, error) {
		var result verifiedid.StatusPayload
		if err := p.get(ctx, "/api/request-status?id="+url.QueryEscape(id), &result); err != nil {
			return result, retry.Unrecoverable(err)
		}
		if result.Status != lastStatus {
			_, _ = fmt.Fprintf(p.out, "%s: %s\n", result.Status, result.Message)
			lastStatus = result.Status
		}
		if !result.Status.Terminal() {
			return result, errRequestPending
		}
		return result, nil
	},
		retry.Context(ctx),
		retry.Attempts(0), // until the context expires
		retry.Delay(interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

func (p presentClient) get(ctx context.Context, path string, target interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}
	response, err := p.doer.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if err := core.TestResponseCode(http.StatusOK, response); err != nil {
		var httpErr core.HttpError
		if errors.As(err, &httpErr) {
			return fmt.Errorf("%w: %s", err, httpErr.ResponseBody)
		}
		return err
	}
	return json.NewDecoder(response.Body).Decode(target)
}
