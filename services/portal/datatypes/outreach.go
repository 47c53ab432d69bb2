// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/manyagarg23/HackathonTwin/services/outreach"
)

var outreachValidate = validator.New()

// ConfigureSMTPRequest carries the credentials for outbound mail. The email
// doubles as the from-address.
type ConfigureSMTPRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the request beyond JSON binding.
func (r *ConfigureSMTPRequest) Validate() error {
	if err := outreachValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	return nil
}

// CampaignResponse is returned by the upload-csv endpoint.
type CampaignResponse struct {
	Success bool                      `json:"success"`
	Summary *outreach.CampaignSummary `json:"summary,omitempty"`
	Results []outreach.ContactResult  `json:"results,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

type SampleCSVResponse struct {
	SampleCSV string `json:"sample_csv"`
}

type ConfigureSMTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
