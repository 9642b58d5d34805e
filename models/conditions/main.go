package conditions

import (
	"errors"
	"fmt"
	"strings"
)

/*
	Error conditions surfaced by the services and
	mapped onto HTTP responses by the mvc layer
*/

type Condition struct {
	Name    string
	Message string
}

func (c *Condition) Error() string {
	return c.Message
}

func (c *Condition) ConditionName() string {
	return c.Name
}

// Named is implemented by every error type in this package
type Named interface {
	ConditionName() string
}

var (
	ErrInvalidDataset     = &Condition{"InvalidDataset", "Invalid dataset. Use 'clinvar' or 'ibd'"}
	ErrMissingInput       = &Condition{"MissingInput", "At least one rsID or a gene is required."}
	ErrNoValidVariants    = &Condition{"NoValidVariants", "No variants with a valid beta or OR value were found"}
	ErrDatasetsNotReady   = &Condition{"DatasetsNotReady", "Datasets are still loading, please retry shortly"}
	ErrGeneNotFound       = &Condition{"GeneNotFound", "Gene not found"}
	ErrPathwayNotFound    = &Condition{"PathwayNotFound", "Pathway not found"}
	ErrMissingCredentials = &Condition{"MissingCredentials", "Email and password are required"}
	ErrInvalidCredentials = &Condition{"InvalidCredentials", "Invalid email or password"}
	ErrUserExists         = &Condition{"UserExists", "An account with this email already exists"}
	ErrInvalidSession     = &Condition{"InvalidSession", "Missing, unknown or expired session token"}
)

type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Required fields missing: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) ConditionName() string {
	return "MissingFields"
}

// InvalidSubmissionError reports an /add-data payload whose values
// cannot be read as the dataset's fields (e.g. an object where a gene is expected)
type InvalidSubmissionError struct {
	Err error
}

func (e *InvalidSubmissionError) Error() string {
	return fmt.Sprintf("Invalid submission: %v", e.Err)
}

func (e *InvalidSubmissionError) Unwrap() error {
	return e.Err
}

func (e *InvalidSubmissionError) ConditionName() string {
	return "InvalidSubmission"
}

// UpstreamError wraps a failed call to an external service (e.g. KEGG)
type UpstreamError struct {
	Service string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s responded with status %d: %v", e.Service, e.Status, e.Err)
	}
	return fmt.Sprintf("%s unreachable: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) ConditionName() string {
	return "UpstreamFailure"
}

// NameOf returns the condition name carried by err, or "" when
// err isn't one of ours
func NameOf(err error) string {
	var named Named
	if errors.As(err, &named) {
		return named.ConditionName()
	}
	return ""
}
