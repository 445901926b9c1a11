package resources

import (
	"regexp"
	"strings"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
	"github.com/Digitalminion/atakora-sub000/pkg/sanitization/azure"
)

type (
	// CosmosAccount models a Microsoft.DocumentDB database account. SQL
	// databases and containers nest beneath it as children.
	CosmosAccount struct {
		construct.ResourceNode
		consistency string
		freeTier    bool
	}

	CosmosAccountProps struct {
		// Name is optional; one is derived from the construct id when
		// omitted.
		Name     string
		Location string
		Tags     map[string]string
		// Consistency is the default consistency level. Defaults to
		// "Session".
		Consistency    string
		EnableFreeTier bool
	}

	// CosmosSQLDatabase models a SQL API database inside an account.
	CosmosSQLDatabase struct {
		construct.ResourceNode
		account    *CosmosAccount
		throughput Throughput
	}

	CosmosSQLDatabaseProps struct {
		Name       string
		Throughput Throughput
	}

	// CosmosSQLContainer models a container inside a SQL database.
	CosmosSQLContainer struct {
		construct.ResourceNode
		database         *CosmosSQLDatabase
		partitionKeyPath string
		defaultTTL       int
		throughput       Throughput
	}

	CosmosSQLContainerProps struct {
		Name string
		// PartitionKeyPath is required and must start with '/'.
		PartitionKeyPath string
		// DefaultTTL in seconds; -1 enables TTL with no expiry default.
		DefaultTTL int
		Throughput Throughput
	}
)

var consistencyLevels = map[string]struct{}{
	"Strong":           {},
	"BoundedStaleness": {},
	"Session":          {},
	"ConsistentPrefix": {},
	"Eventual":         {},
}

var cosmosAccountNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,42}[a-z0-9]$`)

func NewCosmosAccount(scope construct.Construct, id string, props CosmosAccountProps) (*CosmosAccount, error) {
	consistency := props.Consistency
	if consistency == "" {
		consistency = "Session"
	}
	if _, ok := consistencyLevels[consistency]; !ok {
		return nil, &arm.ValidationError{
			Field:      "consistency",
			Message:    "unknown consistency level",
			Details:    "got " + consistency,
			Suggestion: "Use one of Strong, BoundedStaleness, Session, ConsistentPrefix or Eventual",
		}
	}

	name := props.Name
	if name == "" {
		name = azure.CosmosAccountSanitizer.Apply(generateName(id, "cosmos", 44))
	} else if !cosmosAccountNamePattern.MatchString(name) {
		return nil, &arm.ValidationError{
			Field:      "name",
			Message:    "Cosmos DB account names must be 3-44 lowercase alphanumerics or hyphens and start and end with an alphanumeric",
			Details:    "got " + name,
			Suggestion: "Lowercase the name and replace illegal characters with hyphens, or omit it to derive one from the construct id",
		}
	}

	account := &CosmosAccount{consistency: consistency, freeTier: props.EnableFreeTier}
	base, err := construct.NewResourceNode(scope, id, account, construct.ResourceParams{
		Type:     CosmosAccountType,
		ID:       arm.ResourceIDExpr(CosmosAccountType, name),
		Name:     name,
		Location: props.Location,
		Tags:     props.Tags,
	})
	if err != nil {
		return nil, err
	}
	account.ResourceNode = *base
	return account, nil
}

func (a *CosmosAccount) ToArmTemplate() *arm.Resource {
	fragment := a.BaseTemplate(apiVersions["documentdb"])
	fragment.Kind = "GlobalDocumentDB"
	properties := map[string]any{
		"databaseAccountOfferType": "Standard",
		"consistencyPolicy": map[string]any{
			"defaultConsistencyLevel": a.consistency,
		},
		"locations": []map[string]any{
			{"locationName": a.Location(), "failoverPriority": 0},
		},
	}
	if a.freeTier {
		properties["enableFreeTier"] = true
	}
	fragment.Properties = properties
	return fragment
}

// GrantDataRead grants the principal read access to the account's data.
func (a *CosmosAccount) GrantDataRead(principalID string) (*RoleAssignment, error) {
	return grant(a, RoleCosmosDBAccountReader, principalID)
}

// GrantAccountReader grants the principal read access to the account's
// control plane.
func (a *CosmosAccount) GrantAccountReader(principalID string) (*RoleAssignment, error) {
	return grant(a, RoleReader, principalID)
}

func NewCosmosSQLDatabase(account *CosmosAccount, id string, props CosmosSQLDatabaseProps) (*CosmosSQLDatabase, error) {
	if account == nil {
		return nil, &arm.ValidationError{
			Field:      "account",
			Message:    "SQL database requires a parent Cosmos DB account",
			Suggestion: "Create the database with the account construct as its parent",
		}
	}
	if err := props.Throughput.validate("throughput"); err != nil {
		return nil, err
	}
	name := props.Name
	if name == "" {
		name = generateName(id, "db", 255)
	}

	db := &CosmosSQLDatabase{account: account, throughput: props.Throughput}
	base, err := construct.NewResourceNode(account, id, db, construct.ResourceParams{
		Type: CosmosSQLDatabaseType,
		ID:   arm.ResourceIDExpr(CosmosSQLDatabaseType, account.ResourceName(), name),
		Name: account.ResourceName() + "/" + name,
	})
	if err != nil {
		return nil, err
	}
	db.ResourceNode = *base
	db.AddDependency(account.ResourceID())
	return db, nil
}

// DatabaseName is the bare database name without the parent account prefix.
func (d *CosmosSQLDatabase) DatabaseName() string {
	parts := strings.SplitN(d.ResourceName(), "/", 2)
	return parts[len(parts)-1]
}

func (d *CosmosSQLDatabase) Account() *CosmosAccount { return d.account }

func (d *CosmosSQLDatabase) ToArmTemplate() *arm.Resource {
	fragment := d.BaseTemplate(apiVersions["documentdb"])
	// Nested Cosmos resources inherit the account's location.
	fragment.Location = ""
	properties := map[string]any{
		"resource": map[string]any{"id": d.DatabaseName()},
	}
	if options := d.throughput.options(); options != nil {
		properties["options"] = options
	}
	fragment.Properties = properties
	return fragment
}

func NewCosmosSQLContainer(database *CosmosSQLDatabase, id string, props CosmosSQLContainerProps) (*CosmosSQLContainer, error) {
	if database == nil {
		return nil, &arm.ValidationError{
			Field:      "database",
			Message:    "container requires a parent SQL database",
			Suggestion: "Create the container with the database construct as its parent",
		}
	}
	if props.PartitionKeyPath == "" {
		return nil, &arm.ValidationError{
			Field:      "partitionKeyPath",
			Message:    "container requires a partition key path",
			Suggestion: "Pass a document path such as /tenantId",
		}
	}
	if !strings.HasPrefix(props.PartitionKeyPath, "/") {
		return nil, &arm.ValidationError{
			Field:      "partitionKeyPath",
			Message:    "Partition key path must start with /",
			Details:    "got " + props.PartitionKeyPath,
			Suggestion: "Use /" + props.PartitionKeyPath,
		}
	}
	if err := props.Throughput.validate("throughput"); err != nil {
		return nil, err
	}
	name := props.Name
	if name == "" {
		name = generateName(id, "container", 255)
	}

	account := database.Account()
	container := &CosmosSQLContainer{
		database:         database,
		partitionKeyPath: props.PartitionKeyPath,
		defaultTTL:       props.DefaultTTL,
		throughput:       props.Throughput,
	}
	base, err := construct.NewResourceNode(database, id, container, construct.ResourceParams{
		Type: CosmosSQLContainerType,
		ID:   arm.ResourceIDExpr(CosmosSQLContainerType, account.ResourceName(), database.DatabaseName(), name),
		Name: database.ResourceName() + "/" + name,
	})
	if err != nil {
		return nil, err
	}
	container.ResourceNode = *base
	container.AddDependency(database.ResourceID())
	return container, nil
}

func (c *CosmosSQLContainer) PartitionKeyPath() string { return c.partitionKeyPath }

func (c *CosmosSQLContainer) ToArmTemplate() *arm.Resource {
	fragment := c.BaseTemplate(apiVersions["documentdb"])
	fragment.Location = ""
	resource := map[string]any{
		"id": c.containerName(),
		"partitionKey": map[string]any{
			"paths": []string{c.partitionKeyPath},
			"kind":  "Hash",
		},
	}
	if c.defaultTTL != 0 {
		resource["defaultTtl"] = c.defaultTTL
	}
	properties := map[string]any{"resource": resource}
	if options := c.throughput.options(); options != nil {
		properties["options"] = options
	}
	fragment.Properties = properties
	return fragment
}

func (c *CosmosSQLContainer) containerName() string {
	parts := strings.Split(c.ResourceName(), "/")
	return parts[len(parts)-1]
}
