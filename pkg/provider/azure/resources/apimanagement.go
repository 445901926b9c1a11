package resources

import (
	"strings"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

// ApiManagementService models a Microsoft.ApiManagement service instance.
type ApiManagementService struct {
	construct.ResourceNode
	publisherName  string
	publisherEmail string
	skuName        string
	capacity       int
}

type ApiManagementServiceProps struct {
	Name     string
	Location string
	Tags     map[string]string
	// PublisherName and PublisherEmail are required by the service.
	PublisherName  string
	PublisherEmail string
	// SkuName defaults to Developer; Capacity defaults to 1.
	SkuName  string
	Capacity int
}

var apimSkus = map[string]struct{}{
	"Consumption": {},
	"Developer":   {},
	"Basic":       {},
	"Standard":    {},
	"Premium":     {},
}

func NewApiManagementService(scope construct.Construct, id string, props ApiManagementServiceProps) (*ApiManagementService, error) {
	if props.PublisherName == "" {
		return nil, &arm.ValidationError{
			Field:      "publisherName",
			Message:    "API Management requires a publisher name",
			Suggestion: "Set PublisherName to the organization shown on the developer portal",
		}
	}
	if props.PublisherEmail == "" || !strings.Contains(props.PublisherEmail, "@") {
		return nil, &arm.ValidationError{
			Field:      "publisherEmail",
			Message:    "API Management requires a valid publisher email",
			Details:    "got " + props.PublisherEmail,
			Suggestion: "Set PublisherEmail to a reachable address for service notifications",
		}
	}
	sku := props.SkuName
	if sku == "" {
		sku = "Developer"
	}
	if _, ok := apimSkus[sku]; !ok {
		return nil, &arm.ValidationError{
			Field:      "skuName",
			Message:    "unknown API Management sku",
			Details:    "got " + sku,
			Suggestion: "Use one of Consumption, Developer, Basic, Standard or Premium",
		}
	}
	capacity := props.Capacity
	if capacity == 0 && sku != "Consumption" {
		capacity = 1
	}

	name := props.Name
	if name == "" {
		name = generateName(id, "apim", 50)
	}

	svc := &ApiManagementService{
		publisherName:  props.PublisherName,
		publisherEmail: props.PublisherEmail,
		skuName:        sku,
		capacity:       capacity,
	}
	base, err := construct.NewResourceNode(scope, id, svc, construct.ResourceParams{
		Type:     ApiManagementServiceType,
		ID:       arm.ResourceIDExpr(ApiManagementServiceType, name),
		Name:     name,
		Location: props.Location,
		Tags:     props.Tags,
	})
	if err != nil {
		return nil, err
	}
	svc.ResourceNode = *base
	return svc, nil
}

func (s *ApiManagementService) ToArmTemplate() *arm.Resource {
	fragment := s.BaseTemplate(apiVersions["apimanagement"])
	fragment.Sku = &arm.Sku{Name: s.skuName, Capacity: s.capacity}
	fragment.Properties = map[string]any{
		"publisherName":  s.publisherName,
		"publisherEmail": s.publisherEmail,
	}
	return fragment
}

// GrantServiceRead grants the principal read access to the service.
func (s *ApiManagementService) GrantServiceRead(principalID string) (*RoleAssignment, error) {
	return grant(s, RoleReader, principalID)
}
