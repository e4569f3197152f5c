// Package diagram lays out labelled right-triangle diagrams for trigonometry
// problems.
//
// # Overview
//
// A diagram is a right triangle ABC with the right angle at A, a small red
// bracket marking that angle, up to three side labels and a theta marker at
// one of the two acute vertices:
//
//	        AB
//	  A-----------B
//	   |  |     /
//	   | _     /
//	 AC|      / BC
//	   |     /
//	   |    /
//	   |   /
//	   |  /
//	   | /
//	   C
//
// A side label that is not set is the unknown the learner must solve for and
// is not drawn.
//
// # Building
//
// A [Builder] collects the leg lengths, rotation, theta vertex and labels and
// produces an immutable [Layout]:
//
//	l, err := diagram.Build(150, 80,
//	    diagram.WithRotation(35),
//	    diagram.WithThetaAt(diagram.VertexC),
//	    diagram.WithLabels("8", "15", "17"),
//	    diagram.WithUnknown(diagram.SideBC),
//	)
//	if err != nil {
//	    return err
//	}
//	fragments := l.Fragments()
//
// Build runs the full sequence: place vertices, offset label anchors, search
// for the theta marker position, add the bracket, rotate about the centroid
// and finally shift everything so that no rendered point sits closer than
// [Padding] to the top or left edge of the canvas.
//
// # Theta Marker Search
//
// The theta marker has to clear both sides that meet at the theta vertex
// regardless of the triangle's aspect ratio. Instead of per-case geometry the
// builder walks a fixed number of samples from the vertex toward (and past)
// the centroid and takes the first sample further than [ThetaClearance] from
// both sides, falling back to the vertex itself. One code path covers both
// vertices and every rotation.
//
// # Layout Values
//
// [Layout] methods never mutate the receiver: [Layout.Translate],
// [Layout.Rotate] and [Layout.Reposition] return transformed copies. A layout
// can be shared between goroutines freely.
package diagram
