package service

import (
	"context"
	"fmt"
	"strings"

	"coursehub/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

type SecretManagerService interface {
	// GetSecret returns the latest version of the named secret. name is either
	// a short secret ID or a full projects/.../secrets/... resource name.
	GetSecret(ctx context.Context, name string) (string, error)
	Close() error
}

type secretManagerService struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretManagerService(ctx context.Context, cfg *config.Config) (SecretManagerService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP Project ID is not set for the current environment")
	}

	var opts []option.ClientOption
	if cfg.GCPCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretManagerService{
		client:    client,
		projectID: cfg.GCPProjectID,
	}, nil
}

func (s *secretManagerService) GetSecret(ctx context.Context, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(s.projectID, name),
	}

	result, err := s.client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}

	return string(result.Payload.Data), nil
}

func (s *secretManagerService) Close() error {
	return s.client.Close()
}

func secretVersionName(projectID, name string) string {
	if strings.HasPrefix(name, "projects/") {
		if strings.Contains(name, "/versions/") {
			return name
		}
		return name + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name)
}

// ResolveSecrets replaces credentials in cfg with the values of the secrets
// named by the *_SECRET settings.
func ResolveSecrets(ctx context.Context, cfg *config.Config, secrets SecretManagerService) error {
	if cfg.DBConnectionSecret != "" {
		v, err := secrets.GetSecret(ctx, cfg.DBConnectionSecret)
		if err != nil {
			return fmt.Errorf("resolve DB_CONNECTION_SECRET: %w", err)
		}
		cfg.DBConnectionString = strings.TrimSpace(v)
	}
	if cfg.S3SecretKeySecret != "" {
		v, err := secrets.GetSecret(ctx, cfg.S3SecretKeySecret)
		if err != nil {
			return fmt.Errorf("resolve S3_SECRET_KEY_SECRET: %w", err)
		}
		cfg.S3SecretKey = strings.TrimSpace(v)
	}
	return nil
}
