package justwatch

// Base URLs the API returns relative paths against. Title pages live on the
// main site, every image asset (posters, backdrops, package icons) on the
// image CDN.
const (
	detailsBaseURL = "https://justwatch.com"
	imagesBaseURL  = "https://images.justwatch.com"
)

// Fixed image format and profile variables sent with every request. These are
// part of the wire contract and not caller-configurable.
const (
	formatPoster    = "JPG"
	formatOfferIcon = "PNG"
	posterProfile   = "S718"
	backdropProfile = "S1920"
)

// The GraphQL documents below are the wire contract with the JustWatch API.
// Field selections and aliases (notably deeplinkRoku) must be reproduced
// byte-for-byte for the upstream service to answer correctly.

const graphQLTitleNodeQuery = `
query GetTitleNode(
  $nodeId: ID!,
  $language: Language!,
  $country: Country!,
  $formatPoster: ImageFormat,
  $formatOfferIcon: ImageFormat,
  $profile: PosterProfile,
  $backdropProfile: BackdropProfile,
  $filter: OfferFilter!,
) {
  node(id: $nodeId) {
    ...TitleDetails
    __typename
  }
  __typename
}
`

const graphQLSearchQuery = `
query GetSearchTitles(
  $searchTitlesFilter: TitleFilter!,
  $country: Country!,
  $language: Language!,
  $first: Int!,
  $formatPoster: ImageFormat,
  $formatOfferIcon: ImageFormat,
  $profile: PosterProfile,
  $backdropProfile: BackdropProfile,
  $filter: OfferFilter!,
) {
  popularTitles(
    country: $country
    filter: $searchTitlesFilter
    first: $first
    sortBy: POPULAR
    sortRandomSeed: 0
  ) {
    edges {
      node {
        ...TitleDetails
        __typename
      }
      __typename
    }
    __typename
  }
}
`

// graphQLOffersByCountryQuery is a template; the %s placeholder receives one
// aliased offers block per requested country.
const graphQLOffersByCountryQuery = `
query GetTitleOffers(
  $nodeId: ID!,
  $language: Language!,
  $formatOfferIcon: ImageFormat,
  $filter: OfferFilter!,
) {
  node(id: $nodeId) {
    ... on MovieOrShow {
      %s
      __typename
    }
    __typename
  }
  __typename
}
`

// graphQLCountryOffersEntry emits one aliased block per country; the
// upper-cased code serves as both the field alias and the country argument.
const graphQLCountryOffersEntry = `
      %[1]s: offers(country: %[1]s, platform: WEB, filter: $filter) {
        ...TitleOffer
        __typename
      }
`

const graphQLDetailsFragment = `
fragment TitleDetails on MovieOrShow {
  id
  objectId
  objectType
  content(country: $country, language: $language) {
    title
    fullPath
    originalReleaseYear
    originalReleaseDate
    runtime
    shortDescription
    genres {
      shortName
      __typename
    }
    externalIds {
      imdbId
      __typename
    }
    posterUrl(profile: $profile, format: $formatPoster)
    backdrops(profile: $backdropProfile, format: $formatPoster) {
      backdropUrl
      __typename
    }
    __typename
  }
  offers(country: $country, platform: WEB, filter: $filter) {
    ...TitleOffer
  }
  __typename
}
`

const graphQLOfferFragment = `
fragment TitleOffer on Offer {
  id
  monetizationType
  presentationType
  retailPrice(language: $language)
  retailPriceValue
  currency
  lastChangeRetailPriceValue
  type
  package {
    id
    packageId
    clearName
    technicalName
    icon(profile: S100, format: $formatOfferIcon)
    __typename
  }
  standardWebURL
  elementCount
  availableTo
  deeplinkRoku: deeplinkURL(platform: ROKU_OS)
  subtitleLanguages
  videoTechnology
  audioTechnology
  audioLanguages
  __typename
}
`
