// Package domain contains the core domain model for finddata.
//
// The domain is transport- and filesystem-agnostic: it does not depend on XML
// parsing, net/http, or the catalog service. Infra/adapters map into/from
// these types.
package domain
