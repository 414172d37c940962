// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"

	"github.com/aaryanshroff/ops-medic/internal/config"
	"github.com/aaryanshroff/ops-medic/internal/githubauth"
)

// RunToken mints an app JWT and, unless jwtOnly is set, exchanges it
// for an installation access token. The credential is printed to
// stdout, intended for use with curl or the gh CLI.
func RunToken(ctx context.Context, installationID int64, jwtOnly bool) error {
	cfg := config.Load()

	key, err := githubauth.LoadPrivateKey(cfg.GithubPrivateKeyPath)
	if err != nil {
		return err
	}

	issuer, err := githubauth.NewIssuer(key, cfg.GithubAppClientID)
	if err != nil {
		return err
	}

	assertion, err := issuer.Mint()
	if err != nil {
		return err
	}

	if jwtOnly {
		fmt.Println(assertion.Token)
		return nil
	}

	client, err := githubauth.NewClient(
		githubauth.WithEndpoint(cfg.GithubAPIEndpoint),
		githubauth.WithTimeout(cfg.GithubExchangeTimeout),
	)
	if err != nil {
		return err
	}

	token, err := client.Exchange(ctx, assertion, installationID)
	if err != nil {
		return err
	}

	fmt.Println(token.Token)
	return nil
}
