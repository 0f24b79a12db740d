// Package sheet plans the physical placement of imposed page pairs onto
// output paper.
//
// # Overview
//
// The imposition core decides which two source pages land on each printable
// sheet side; this package decides where on the paper they go. Each side has
// two slots (left and right half of the sheet). For every slot the planner
// computes scale factors, rendered size and offsets from the source page
// dimensions, the paper size, a scaling mode and a positioning mode.
//
// All coordinates are PDF points with the origin at the bottom-left corner
// of the output sheet, matching the conventions of the PDF writer that
// consumes the plan.
//
// # Scaling modes
//
//   - proportional: uniform scale, page fits entirely within its slot
//   - stretch: independent x/y scales, page fills the slot exactly
//   - original: no scaling; oversized pages overflow their slot
//
// # Positioning modes
//
//   - centered: page centered within its slot
//   - binding_aligned: page pushed toward the spine (the vertical center
//     line), so facing pages meet at the fold
//
// The planner is pure geometry: it never touches PDF data. Print mark
// coordinates (crop ticks, fold ticks, signature-order labels) are computed
// here as well and drawn by the PDF writer.
package sheet
