// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package credential

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Chain resolves credentials from the standard AWS credential chain:
// environment variables, shared configuration files, SSO, and the
// instance metadata service, in the order established by the
// aws-sdk-go-v2 configuration loader.
//
// The chain configuration is loaded lazily on the first Retrieve and
// reused afterward. Chain is safe for concurrent use. Wrap a Chain in
// a Cache to avoid hitting the underlying chain on every call.
type Chain struct {
	// Region is the region passed to the configuration loader. If
	// empty, the loader falls back to the environment and shared
	// configuration.
	Region string

	once sync.Once
	cfg  aws.Config
	err  error
}

// NewChain constructs a Chain for the given region.
func NewChain(region string) *Chain {
	return &Chain{Region: region}
}

func (p *Chain) load(ctx context.Context) (aws.Config, error) {
	p.once.Do(func() {
		var opts []func(*config.LoadOptions) error
		if p.Region != "" {
			opts = append(opts, config.WithRegion(p.Region))
		}
		p.cfg, p.err = config.LoadDefaultConfig(ctx, opts...)
	})
	return p.cfg, p.err
}

// Retrieve obtains a fresh credential handle from the chain.
func (p *Chain) Retrieve(ctx context.Context) (*Credentials, error) {
	cfg, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	ac, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, err
	}
	creds := &Credentials{
		AccessKeyID:     ac.AccessKeyID,
		SecretAccessKey: ac.SecretAccessKey,
		SessionToken:    ac.SessionToken,
	}
	if ac.CanExpire {
		creds.Expires = ac.Expires
	}
	return creds, nil
}

// Validate confirms the chain yields usable credentials by calling the
// STS GetCallerIdentity operation, which requires no permissions beyond
// valid credentials. It returns the STS error verbatim on failure.
func (p *Chain) Validate(ctx context.Context) error {
	cfg, err := p.load(ctx)
	if err != nil {
		return err
	}
	client := sts.NewFromConfig(cfg)
	_, err = client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	return err
}
