// Package netscope provides a declarative way of composing neural networks as trees of named
// groups. It does no numeric work itself; everything is delegated to a Backend, so that the same
// tree can describe a model for any execution engine. A reference Backend that computes eagerly in
// memory is given by the subpackage "cpu".
//
// Building Trees
//
// Every tree starts with its root, made by New:
//
//		net := ns.New("net", ns.WithBackend(cpu.New()))
//
// For brevity, netscope is abbreviated 'ns'.
//
// Trees consist of Groups, which hold Layers (each wrapping an Operator), other Groups and
// Recurrents. Operators are the atomic transformations, such as a dense layer or an activation;
// all of the standard ones can be found in the subpackage "operators", with their Initializers
// in "initializers" and Regularizers in "penalties".
//
// The standard procedure for building a tree is:
//
//		in, err := ns.NewInput(ns.Shape{784})
//		if err != nil {
//			return err
//		}
//
//		net.Add(in)
//		net.Add(operators.Dense(128))
//		net.Add(operators.ReLU())
//		net.Add(operators.Dense(10))
//		net.Add(operators.Softmax(true))
//
//		if net.Err() != nil {
//			return net.Err()
//		}
//
// Adding Operators to the root is special: every Nucleus Operator (like a dense layer) opens a new
// sub-group named after it, and the Operators that follow join that sub-group. The tree above has
// two sub-groups, "fc" and "fc2", which are described by StructureString as:
//
//		input_784 => fc_128 -> relu => fc_10 -> softmax => output_10
//
// Names are unique among siblings: the first Layer or Group with a given name keeps it, and later
// ones are numbered, starting at 2. Layers and Groups are counted separately.
//
// Modes
//
// Each Group combines its children under one of five Modes. Sequential Groups pass the output of
// each child to the next. Sum, Product and Concat Groups give every child the same input and add,
// multiply or join their outputs, respectively; Fork Groups do the same but return every output as
// Values. Groups with other Modes are opened with AddGroup:
//
//		sum := net.AddGroup(ns.Sum)
//		sum.Add(operators.Dense(10))
//		sum.Add(operators.Dense(10))
//
// Branches of the root (AddBranch) see the same value as the child that follows them, but their
// outputs are only kept in BranchOutputs, and never rejoin the main chain.
//
// Errors
//
// Building a tree doesn't return errors from each call. Instead, the first error is stored in the
// tree, available through Err(), and every later call to Add is ignored. Invoke returns the stored
// error without doing anything. For debugging, PanicErrors makes them panic immediately.
//
// All errors returned by this package may be wrapped with the name of the offending Group or
// Layer; the global errors (e.g. ErrEmptyGroup) should be compared with errors.Cause().
//
// Invoking
//
// Invoke runs the tree on its input (or realizes the root's Input, if it has one) and returns its
// output. Parameters are declared by Operators through their Scope on first use; later
// invocations of the same tree reuse them. After it has been invoked, a Group is frozen and no
// more children can be added to it.
//
// The auxiliary losses of the tree (e.g. from Regularizers) are summed by ExtraLoss, and the
// structure of the tree with its parameter counts is given as a table by Summary.
//
// Operator identifiers
//
// Operators, Initializers and Regularizers can also be given as strings of the form
// "name:arg,key=value", such as "lrelu:0.2" or "uniform:lower=-0.1,upper=0.1". The subpackages
// register their types when they are imported, after which they can be built with GetOperator,
// GetInitializer and GetRegularizer.
package netscope
