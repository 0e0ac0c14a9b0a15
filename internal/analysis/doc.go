// Package analysis characterizes recorded bounce trajectories.
//
//   - [Spectrum]: magnitude spectrum of a height trace
//   - [DominantFrequency]: strongest non-DC frequency, in Hz
//   - [BounceIntervals]: step gaps between consecutive floor contacts
//
// A perfectly elastic ball bounces periodically, so its height trace has
// a sharp spectral peak at the bounce frequency; damping smears the peak
// as the period shrinks.
package analysis
