package types

type Filter struct {
	Search         string
	Filter         map[string]interface{}
	Sort           map[string]string
	Limit          int
	Offset         int
	Page           int
	WithPagination bool
}
