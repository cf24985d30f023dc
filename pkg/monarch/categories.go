package monarch

import "context"

const queryGetCategories = `query GetCategories {
  categories {
    id
    name
    icon
    order
    systemCategory
    isSystemCategory
    isDisabled
    group { id name type }
  }
}`

// GetTransactionCategories lists all transaction categories.
func (c *Client) GetTransactionCategories(ctx context.Context) (any, error) {
	return c.gql(ctx, "GetCategories", queryGetCategories, nil)
}

const queryGetCategoryGroups = `query ManageGetCategoryGroups {
  categoryGroups {
    id
    name
    order
    type
  }
}`

// GetTransactionCategoryGroups lists the category groups.
func (c *Client) GetTransactionCategoryGroups(ctx context.Context) (any, error) {
	return c.gql(ctx, "ManageGetCategoryGroups", queryGetCategoryGroups, nil)
}

const mutationCreateCategory = `mutation Web_CreateCategory($input: CreateCategoryInput!) {
  createCategory(input: $input) {
    category { id name icon group { id } }
    errors { message }
  }
}`

// CategoryInput describes a category to create.
type CategoryInput struct {
	GroupID         string
	Name            string
	Icon            string
	RolloverEnabled bool
}

// CreateTransactionCategory creates a category inside a group.
func (c *Client) CreateTransactionCategory(ctx context.Context, input CategoryInput) (any, error) {
	variables := map[string]any{
		"group": input.GroupID,
		"name":  input.Name,
		"icon":  input.Icon,
	}
	if input.RolloverEnabled {
		variables["rolloverEnabled"] = true
	}
	return c.gql(ctx, "Web_CreateCategory", mutationCreateCategory, map[string]any{"input": variables})
}

const mutationDeleteCategory = `mutation Web_DeleteCategory($id: UUID!) {
  deleteCategory(id: $id) {
    deleted
    errors { message }
  }
}`

// DeleteTransactionCategory deletes a category.
func (c *Client) DeleteTransactionCategory(ctx context.Context, categoryID string) (any, error) {
	return c.gql(ctx, "Web_DeleteCategory", mutationDeleteCategory, map[string]any{"id": categoryID})
}
