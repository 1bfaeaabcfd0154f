// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sign

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"

	"github.com/gogama/queryx/request"
)

// fallbackRegion is the signing region for global endpoints, which
// have no region of their own.
const fallbackRegion = "us-east-1"

// V4 is a Signer implementing AWS Signature Version 4. Construct it
// with NewV4.
type V4 struct {
	signer *v4.Signer
	now    func() time.Time
}

// NewV4 constructs a Signature Version 4 signer.
func NewV4() *V4 {
	return &V4{
		signer: v4.NewSigner(),
		now:    time.Now,
	}
}

// Default is a shared Signature Version 4 signer suitable for most
// callers.
var Default Signer = NewV4()

// Sign computes the Signature Version 4 signature of the query in its
// current state and writes the X-Amz-Content-Sha256 and Authorization
// headers into the descriptor.
func (s *V4) Sign(ctx context.Context, q *request.Query) error {
	if q.Credentials == nil {
		return errors.New("queryx/sign: query has no credentials")
	}
	if q.URL == nil {
		return errors.New("queryx/sign: query has no URL")
	}

	creds := aws.Credentials{
		AccessKeyID:     q.Credentials.AccessKeyID,
		SecretAccessKey: q.Credentials.SecretAccessKey,
		SessionToken:    q.Credentials.SessionToken,
	}
	region := q.Region
	if region == "" {
		region = fallbackRegion
	}
	if q.Header == nil {
		q.Header = make(http.Header)
	}

	hash := payloadHash(q.Body)
	q.Header.Set("X-Amz-Content-Sha256", hash)

	// The request shares the descriptor's header map, so the signature
	// headers land in the descriptor.
	r := q.ToRequest(ctx)
	if err := s.signer.SignHTTP(ctx, creds, r, hash, q.Service, region, s.now()); err != nil {
		return &Error{Cause: err}
	}
	return nil
}

func payloadHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
