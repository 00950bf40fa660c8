package contest_api_client

import (
	"github.com/mcdev12/codearena/go/clients"
)

type ContestApiClient struct {
	*clients.BaseClient
}

func NewContestApiClient(baseURL string) *ContestApiClient {
	client := &ContestApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(ContentTypeHeader, ContentTypeJSON)

	return client
}
