package resources

import (
	"fmt"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

// LogAnalyticsWorkspace models a Microsoft.OperationalInsights workspace.
type LogAnalyticsWorkspace struct {
	construct.ResourceNode
	retentionDays int
	skuName       string
}

type LogAnalyticsWorkspaceProps struct {
	Name     string
	Location string
	Tags     map[string]string
	// RetentionDays keeps ingested data for 30-730 days. Defaults to 30.
	RetentionDays int
	// SkuName defaults to PerGB2018.
	SkuName string
}

const (
	retentionDaysMin = 30
	retentionDaysMax = 730
)

func NewLogAnalyticsWorkspace(scope construct.Construct, id string, props LogAnalyticsWorkspaceProps) (*LogAnalyticsWorkspace, error) {
	retention := props.RetentionDays
	if retention == 0 {
		retention = retentionDaysMin
	}
	if retention < retentionDaysMin || retention > retentionDaysMax {
		return nil, &arm.ValidationError{
			Field:      "retentionDays",
			Message:    fmt.Sprintf("retention must be between %d and %d days", retentionDaysMin, retentionDaysMax),
			Details:    fmt.Sprintf("got %d", retention),
			Suggestion: "Pick a retention period inside the supported range or omit it for the default",
		}
	}
	sku := props.SkuName
	if sku == "" {
		sku = "PerGB2018"
	}

	name := props.Name
	if name == "" {
		name = generateName(id, "logs", 63)
	}

	ws := &LogAnalyticsWorkspace{retentionDays: retention, skuName: sku}
	base, err := construct.NewResourceNode(scope, id, ws, construct.ResourceParams{
		Type:     LogAnalyticsWorkspaceType,
		ID:       arm.ResourceIDExpr(LogAnalyticsWorkspaceType, name),
		Name:     name,
		Location: props.Location,
		Tags:     props.Tags,
	})
	if err != nil {
		return nil, err
	}
	ws.ResourceNode = *base
	return ws, nil
}

func (w *LogAnalyticsWorkspace) RetentionDays() int { return w.retentionDays }

func (w *LogAnalyticsWorkspace) ToArmTemplate() *arm.Resource {
	fragment := w.BaseTemplate(apiVersions["operationalinsights"])
	fragment.Properties = map[string]any{
		"sku":             map[string]any{"name": w.skuName},
		"retentionInDays": w.retentionDays,
	}
	return fragment
}

// GrantLogsRead grants the principal query access to the workspace.
func (w *LogAnalyticsWorkspace) GrantLogsRead(principalID string) (*RoleAssignment, error) {
	return grant(w, RoleLogAnalyticsReader, principalID)
}
