// Package codec holds the stateless string transforms used by the element
// tree: attribute name casing for dataset keys and CSS declaration blocks
// for inline styles.
package codec
