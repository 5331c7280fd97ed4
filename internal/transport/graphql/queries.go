package graphql

// Operation names.
const (
	OpProductSearch     = "productSearch"
	OpAttributeMetadata = "attributeMetadata"
	OpRefineProduct     = "refineProduct"
	OpStockSubscribe    = "AmxnotifStockSubscribe"
)

const productViewFragment = `
fragment ProductView on ProductSearchItem {
  productView {
    __typename
    sku
    name
    inStock
    url
    urlKey
    images {
      label
      url
      roles
    }
    ... on ComplexProductView {
      priceRange {
        maximum { final { amount { value currency } } regular { amount { value currency } } }
        minimum { final { amount { value currency } } regular { amount { value currency } } }
      }
      options {
        id
        title
        values {
          title
          ... on ProductViewOptionValueSwatch { id inStock type value }
        }
      }
    }
    ... on SimpleProductView {
      price {
        final { amount { value currency } }
        regular { amount { value currency } }
      }
    }
  }
}
`

// ProductSearchQuery is the paged product listing with facets.
const ProductSearchQuery = `
query productSearch(
  $phrase: String!
  $pageSize: Int
  $currentPage: Int = 1
  $filter: [SearchClauseInput!]
  $sort: [ProductSearchSortInput!]
  $context: QueryContextInput
) {
  productSearch(
    phrase: $phrase
    page_size: $pageSize
    current_page: $currentPage
    filter: $filter
    sort: $sort
    context: $context
  ) {
    total_count
    items {
      ...ProductView
      product {
        __typename
        sku
        name
        canonical_url
        small_image { url }
        image { url }
        thumbnail { url }
        price_range {
          minimum_price {
            fixed_product_taxes { amount { value currency } label }
            regular_price { value currency }
            final_price { value currency }
            discount { percent_off amount_off }
          }
          maximum_price {
            fixed_product_taxes { amount { value currency } label }
            regular_price { value currency }
            final_price { value currency }
            discount { percent_off amount_off }
          }
        }
      }
      highlights { attribute value matched_words }
    }
    facets {
      title
      attribute
      type
      buckets {
        title
        __typename
        ... on CategoryView { name count path }
        ... on ScalarBucket { id count }
        ... on RangeBucket { from to count }
        ... on StatsBucket { min max }
      }
    }
    suggestions
    related_terms
    page_info { current_page page_size total_pages }
  }
}
` + productViewFragment

// AttributeMetadataQuery lists sortable and filterable attributes.
const AttributeMetadataQuery = `
query attributeMetadata {
  attributeMetadata {
    sortable { label attribute numeric }
    filterableInSearch { label attribute numeric }
  }
}
`

// RefineProductQuery resolves a configurable product for selected options.
const RefineProductQuery = `
query refineProduct($optionIds: [String!]!, $sku: String!) {
  refineProduct(optionIds: $optionIds, sku: $sku) {
    __typename
    id
    sku
    name
    inStock
    url
    urlKey
    images { label url roles }
    ... on SimpleProductView {
      price {
        final { amount { value currency } }
        regular { amount { value currency } }
      }
    }
    ... on ComplexProductView {
      options {
        id
        title
        required
        values { id title }
      }
      priceRange {
        maximum { final { amount { value currency } } regular { amount { value currency } } }
        minimum { final { amount { value currency } } regular { amount { value currency } } }
      }
    }
  }
}
`

// StockSubscribeMutation registers an email for a back-in-stock alert.
const StockSubscribeMutation = `
mutation AmxnotifStockSubscribe($email: String!, $agree: Boolean!, $productId: Int!) {
  AmxnotifStockSubscribe(input: { email: $email, agree: $agree, product_id: $productId }) {
    response_message
  }
}
`
