package monarch

import "context"

const queryGetTags = `query GetHouseholdTransactionTags {
  householdTransactionTags {
    id
    name
    color
    order
    transactionCount
  }
}`

// GetTransactionTags lists all transaction tags.
func (c *Client) GetTransactionTags(ctx context.Context) (any, error) {
	return c.gql(ctx, "GetHouseholdTransactionTags", queryGetTags, nil)
}

const mutationCreateTag = `mutation Common_CreateTransactionTag($name: String!, $color: String!) {
  createTransactionTag(input: {name: $name, color: $color}) {
    tag { id name color order }
    errors { message }
  }
}`

// CreateTransactionTag creates a tag.
func (c *Client) CreateTransactionTag(ctx context.Context, name, color string) (any, error) {
	return c.gql(ctx, "Common_CreateTransactionTag", mutationCreateTag, map[string]any{
		"name":  name,
		"color": color,
	})
}

const mutationSetTransactionTags = `mutation Web_SetTransactionTags($input: SetTransactionTagsInput!) {
  setTransactionTags(input: $input) {
    transaction { id tags { id name } }
    errors { message }
  }
}`

// SetTransactionTags replaces the tags on a transaction.
func (c *Client) SetTransactionTags(ctx context.Context, transactionID string, tagIDs []string) (any, error) {
	return c.gql(ctx, "Web_SetTransactionTags", mutationSetTransactionTags, map[string]any{
		"input": map[string]any{
			"transactionId": transactionID,
			"tagIds":        emptyIfNil(tagIDs),
		},
	})
}
