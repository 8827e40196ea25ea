package runbook

// Reference is a minimal pointer to another node
type Reference struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Book represents a Runbook book
type Book struct {
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Pathname    string    `json:"pathname"`
	BookType    string    `json:"bookType"`
	Workspace   Reference `json:"workspace"`
}

// Category represents an article category within a book
type Category struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Article represents a Runbook article. List results carry BodySnippet,
// a single article fetch carries BodyText and its relations.
type Article struct {
	Typename      string     `json:"__typename,omitempty"`
	UID           string     `json:"uid"`
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	BodyText      string     `json:"bodyText,omitempty"`
	BodySnippet   string     `json:"bodySnippet,omitempty"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
	AllCategories []Category `json:"allCategories,omitempty"`
	Folder        *Reference `json:"folder,omitempty"`
	Book          *Reference `json:"book,omitempty"`
}

// ArticleList is a page of articles
type ArticleList struct {
	BookName   string     `json:"bookName,omitempty"`
	TotalCount int        `json:"totalCount"`
	Nodes      []*Article `json:"nodes"`
}

// SearchResult is a single search hit
type SearchResult struct {
	UID         string `json:"uid"`
	NodeType    string `json:"nodeType"`
	Name        string `json:"name"`
	BookUID     string `json:"bookUid"`
	BookName    string `json:"bookName"`
	URL         string `json:"url"`
	BodySnippet string `json:"bodySnippet"`
}

// SearchResults is a page of search hits
type SearchResults struct {
	TotalCount int             `json:"totalCount"`
	Nodes      []*SearchResult `json:"nodes"`
}

// GetBooksVariables are the variables of the getBooks query
type GetBooksVariables struct {
	Q string `json:"q"`
}

// GetBooksResult is the data returned by the getBooks query
type GetBooksResult struct {
	Organization struct {
		Books struct {
			Nodes []*Book `json:"nodes"`
		} `json:"books"`
	} `json:"organization"`
}

// GetArticlesVariables are the variables of the getArticles query. Zero
// values are omitted so the query defaults apply.
type GetArticlesVariables struct {
	BookUID     string `json:"bookUid"`
	Q           string `json:"q,omitempty"`
	CategoryUID string `json:"categoryUid,omitempty"`
	OrderBy     string `json:"orderBy,omitempty"`
	First       int    `json:"first,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

// GetArticlesResult is the data returned by the getArticles query
type GetArticlesResult struct {
	Node *struct {
		Typename string      `json:"__typename"`
		Name     string      `json:"name"`
		Articles ArticleList `json:"articles"`
	} `json:"node"`
}

// GetArticleVariables are the variables of the getArticle query
type GetArticleVariables struct {
	ArticleUID string `json:"articleUid"`
}

// GetArticleResult is the data returned by the getArticle query
type GetArticleResult struct {
	Node *Article `json:"node"`
}

// GetCategoriesVariables are the variables of the getCategories query
type GetCategoriesVariables struct {
	BookUID string `json:"bookUid"`
}

// GetCategoriesResult is the data returned by the getCategories query
type GetCategoriesResult struct {
	Node *struct {
		Typename   string `json:"__typename"`
		Categories struct {
			Nodes []*Category `json:"nodes"`
		} `json:"categories"`
	} `json:"node"`
}

// SearchVariables are the variables of the search query
type SearchVariables struct {
	Scope    string `json:"scope,omitempty"`
	Keywords string `json:"keywords"`
	Offset   int    `json:"offset,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	OrderBy  string `json:"orderBy,omitempty"`
}

// SearchQueryResult is the data returned by the search query
type SearchQueryResult struct {
	SearchResults SearchResults `json:"searchResults"`
}
