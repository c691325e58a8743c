package netscope

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ExtraLoss returns the sum of all auxiliary losses of the tree: the penalties of Regularizers
// attached to parameters, the losses added by Operators through Scope.AddLoss, and whatever the
// hook given to WithCustomLoss returns.
//
// The sum is computed the first time ExtraLoss is called and cached afterwards. If there are no
// losses at all, ExtraLoss returns nil, and that result is cached as well.
func (g *Group) ExtraLoss() (Value, error) {
	if g.extraLossDone {
		return g.extraLoss, nil
	} else if g.tree.err != nil {
		return nil, g.tree.err
	}

	var vs []Value
	var names []string
	for _, l := range g.tree.losses {
		v, err := l.eval()
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't compute loss %q", l.name)
		} else if v == nil {
			continue
		}

		vs = append(vs, v)
		names = append(names, l.name)
	}

	if g.tree.customLoss != nil {
		for _, v := range g.tree.customLoss(g) {
			if v != nil {
				vs = append(vs, v)
				names = append(names, "custom")
			}
		}
	}

	var result Value
	if len(vs) != 0 {
		b := g.tree.backend
		if b == nil {
			return nil, errors.Wrapf(ErrNoBackend, "Can't sum extra losses of %q", g.Path())
		}

		var err error
		if result, err = b.AddN(vs); err != nil {
			return nil, errors.Wrapf(err, "Couldn't sum extra losses of %q", g.Path())
		}
	}

	if g.tree.showExtraLossInfo && len(names) != 0 {
		log := g.tree.log.WithField("group", g.Path())
		log.Infof("Extra losses: %d", len(names))
		for _, n := range names {
			log.WithFields(logrus.Fields{"loss": n}).Info("Extra loss")
		}
	}

	g.extraLoss = result
	g.extraLossDone = true
	return result, nil
}
