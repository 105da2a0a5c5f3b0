// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata so repeated validation of configuration and query options is
// cheap. Field names in error messages use the koanf tag when one is present,
// so configuration errors read as dotted paths:
//
//	recommend.alpha must be less than or equal to 1
//
// Example usage:
//
//	type Options struct {
//	    Alpha float64 `koanf:"alpha" validate:"gte=0,lte=1"`
//	    TopN  int     `koanf:"top_n" validate:"gt=0"`
//	}
//
//	var errs validation.Errors
//	if err := validation.ValidateStruct(&opts); errors.As(err, &errs) {
//	    for _, fe := range errs {
//	        fmt.Println(fe.Path, fe.Tag)
//	    }
//	}
package validation
