// Package config reads and writes YAML mapping files.
//
// A mapping file declares, per source and target struct type pair, which
// fields are copied, which are converted with a named function, which are
// filled from a property path or a default, and which are intentionally left
// out:
//
//	version: "1"
//	mappings:
//	  - source: store.Customer
//	    target: warehouse.Customer
//	    121:
//	      FullName: FirstName
//	    fields:
//	      - source: Address
//	        target: LastName
//	        path: City
//	      - source: Email
//	        target: Email
//	        transform: lower
//	      - target: Phone
//	        default: "n/a"
//	    omit_source: [IsActive]
//	    omit_target: [PasswordHash]
//	transforms:
//	  - name: lower
//
// Transform names resolve to Go functions through a Registry. Validate checks
// a file against a type graph loaded by the analyzer, without running any
// mapping.
package config
