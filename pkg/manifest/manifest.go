// Package manifest loads a YAML description of an application and builds
// the corresponding construct tree, so the CLI can synthesize templates
// without a Go program defining the app.
package manifest

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Digitalminion/atakora-sub000/pkg/construct"
	"github.com/Digitalminion/atakora-sub000/pkg/provider/azure/resources"
	"github.com/Digitalminion/atakora-sub000/pkg/stack"
)

type (
	Manifest struct {
		App      string            `yaml:"app"`
		Location string            `yaml:"location"`
		Tags     map[string]string `yaml:"tags"`
		Stacks   []StackDef        `yaml:"stacks"`
	}

	StackDef struct {
		Name string `yaml:"name"`
		// Scope is "subscription" or "resourceGroup" (the default).
		Scope         string            `yaml:"scope"`
		ResourceGroup string            `yaml:"resourceGroup"`
		Location      string            `yaml:"location"`
		Tags          map[string]string `yaml:"tags"`
		Resources     []ResourceDef     `yaml:"resources"`
	}

	ResourceDef struct {
		Kind     string            `yaml:"kind"`
		Name     string            `yaml:"name"`
		Location string            `yaml:"location"`
		Tags     map[string]string `yaml:"tags"`

		Consistency    string `yaml:"consistency"`
		FreeTier       bool   `yaml:"freeTier"`
		TenantID       string `yaml:"tenantId"`
		Sku            string `yaml:"sku"`
		Capacity       int    `yaml:"capacity"`
		PublisherName  string `yaml:"publisherName"`
		PublisherEmail string `yaml:"publisherEmail"`
		RetentionDays  int    `yaml:"retentionDays"`

		PartitionKey string `yaml:"partitionKey"`
		Throughput   int    `yaml:"throughput"`
		AutoscaleMax int    `yaml:"autoscaleMax"`
		DefaultTTL   int    `yaml:"defaultTtl"`

		Value       string `yaml:"value"`
		ContentType string `yaml:"contentType"`

		Grants []GrantDef `yaml:"grants"`
		// Resources nests children: databases under a Cosmos account,
		// containers under a database, secrets under a vault.
		Resources []ResourceDef `yaml:"resources"`
	}

	GrantDef struct {
		Role      string `yaml:"role"`
		Principal string `yaml:"principal"`
	}
)

// Load reads and decodes a manifest file. Unknown fields are rejected so
// typos surface instead of silently dropping configuration.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening manifest '%s'", path)
	}
	defer f.Close() // nolint:errcheck

	var m Manifest
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrapf(err, "decoding manifest '%s'", path)
	}
	if m.App == "" {
		m.App = "App"
	}
	return &m, nil
}

// Build constructs the application tree the manifest describes.
func (m *Manifest) Build() (*construct.App, error) {
	app, err := construct.NewApp(m.App, construct.Context{Location: m.Location, Tags: m.Tags})
	if err != nil {
		return nil, err
	}
	for _, def := range m.Stacks {
		if def.Name == "" {
			return nil, errors.New("every stack requires a name")
		}
		var (
			parent construct.Construct
			err    error
		)
		switch def.Scope {
		case "subscription":
			parent, err = stack.NewSubscriptionStack(app, def.Name, stack.StackProps{
				Location: def.Location,
				Tags:     def.Tags,
			})
		case "resourceGroup", "":
			parent, err = stack.NewResourceGroupStack(app, def.Name, stack.ResourceGroupStackProps{
				StackProps:    stack.StackProps{Location: def.Location, Tags: def.Tags},
				ResourceGroup: def.ResourceGroup,
			})
		default:
			err = errors.Errorf("stack '%s': unknown scope '%s'", def.Name, def.Scope)
		}
		if err != nil {
			return nil, err
		}
		for i, res := range def.Resources {
			if err := buildResource(parent, res, i); err != nil {
				return nil, errors.Wrapf(err, "stack '%s'", def.Name)
			}
		}
	}
	return app, nil
}

func buildResource(parent construct.Construct, def ResourceDef, index int) error {
	id := def.Name
	if id == "" {
		id = fmt.Sprintf("%s%d", def.Kind, index)
	}

	switch def.Kind {
	case "resourceGroup":
		_, err := resources.NewResourceGroup(parent, id, resources.ResourceGroupProps{
			Name:     def.Name,
			Location: def.Location,
			Tags:     def.Tags,
		})
		return err

	case "cosmosAccount":
		account, err := resources.NewCosmosAccount(parent, id, resources.CosmosAccountProps{
			Name:           def.Name,
			Location:       def.Location,
			Tags:           def.Tags,
			Consistency:    def.Consistency,
			EnableFreeTier: def.FreeTier,
		})
		if err != nil {
			return err
		}
		for i, child := range def.Resources {
			if child.Kind != "database" {
				return errors.Errorf("cosmosAccount '%s': unexpected child kind '%s'", id, child.Kind)
			}
			if err := buildDatabase(account, child, i); err != nil {
				return err
			}
		}
		return applyGrants(account, def.Grants)

	case "keyVault":
		vault, err := resources.NewKeyVault(parent, id, resources.KeyVaultProps{
			Name:     def.Name,
			Location: def.Location,
			Tags:     def.Tags,
			TenantID: def.TenantID,
			SkuName:  def.Sku,
		})
		if err != nil {
			return err
		}
		for i, child := range def.Resources {
			if child.Kind != "secret" {
				return errors.Errorf("keyVault '%s': unexpected child kind '%s'", id, child.Kind)
			}
			childID := child.Name
			if childID == "" {
				childID = fmt.Sprintf("secret%d", i)
			}
			if _, err := resources.NewKeyVaultSecret(vault, childID, resources.KeyVaultSecretProps{
				Name:        child.Name,
				Value:       child.Value,
				ContentType: child.ContentType,
			}); err != nil {
				return err
			}
		}
		return applyGrants(vault, def.Grants)

	case "logWorkspace":
		ws, err := resources.NewLogAnalyticsWorkspace(parent, id, resources.LogAnalyticsWorkspaceProps{
			Name:          def.Name,
			Location:      def.Location,
			Tags:          def.Tags,
			RetentionDays: def.RetentionDays,
			SkuName:       def.Sku,
		})
		if err != nil {
			return err
		}
		return applyGrants(ws, def.Grants)

	case "identity":
		_, err := resources.NewUserAssignedIdentity(parent, id, resources.UserAssignedIdentityProps{
			Name:     def.Name,
			Location: def.Location,
			Tags:     def.Tags,
		})
		return err

	case "apiManagement":
		svc, err := resources.NewApiManagementService(parent, id, resources.ApiManagementServiceProps{
			Name:           def.Name,
			Location:       def.Location,
			Tags:           def.Tags,
			PublisherName:  def.PublisherName,
			PublisherEmail: def.PublisherEmail,
			SkuName:        def.Sku,
			Capacity:       def.Capacity,
		})
		if err != nil {
			return err
		}
		return applyGrants(svc, def.Grants)

	default:
		return errors.Errorf("unknown resource kind '%s'", def.Kind)
	}
}

func buildDatabase(account *resources.CosmosAccount, def ResourceDef, index int) error {
	id := def.Name
	if id == "" {
		id = fmt.Sprintf("database%d", index)
	}
	db, err := resources.NewCosmosSQLDatabase(account, id, resources.CosmosSQLDatabaseProps{
		Name:       def.Name,
		Throughput: resources.Throughput{Manual: def.Throughput, AutoscaleMax: def.AutoscaleMax},
	})
	if err != nil {
		return err
	}
	for i, child := range def.Resources {
		if child.Kind != "container" {
			return errors.Errorf("database '%s': unexpected child kind '%s'", id, child.Kind)
		}
		childID := child.Name
		if childID == "" {
			childID = fmt.Sprintf("container%d", i)
		}
		if _, err := resources.NewCosmosSQLContainer(db, childID, resources.CosmosSQLContainerProps{
			Name:             child.Name,
			PartitionKeyPath: child.PartitionKey,
			DefaultTTL:       child.DefaultTTL,
			Throughput:       resources.Throughput{Manual: child.Throughput, AutoscaleMax: child.AutoscaleMax},
		}); err != nil {
			return err
		}
	}
	return nil
}

func applyGrants(res construct.Resource, grants []GrantDef) error {
	for _, g := range grants {
		if g.Principal == "" {
			return errors.Errorf("grant on '%s' requires a principal", res.Node().Path())
		}
		var err error
		switch target := res.(type) {
		case *resources.CosmosAccount:
			switch g.Role {
			case "dataRead":
				_, err = target.GrantDataRead(g.Principal)
			case "reader":
				_, err = target.GrantAccountReader(g.Principal)
			default:
				err = errors.Errorf("cosmos account grant: unknown role '%s'", g.Role)
			}
		case *resources.KeyVault:
			switch g.Role {
			case "secretsRead":
				_, err = target.GrantSecretsRead(g.Principal)
			default:
				err = errors.Errorf("key vault grant: unknown role '%s'", g.Role)
			}
		case *resources.LogAnalyticsWorkspace:
			switch g.Role {
			case "logsRead":
				_, err = target.GrantLogsRead(g.Principal)
			default:
				err = errors.Errorf("log workspace grant: unknown role '%s'", g.Role)
			}
		case *resources.ApiManagementService:
			switch g.Role {
			case "serviceRead":
				_, err = target.GrantServiceRead(g.Principal)
			default:
				err = errors.Errorf("api management grant: unknown role '%s'", g.Role)
			}
		default:
			err = errors.Errorf("resource '%s' does not support grants", res.Node().Path())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
